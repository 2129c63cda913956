package quote

import (
	"context"
	"net/url"
	"strings"

	"github.com/nikolayk812/hgshop/internal/port"
)

// MailtoDelivery hands the quote to the visitor's mail client.
type MailtoDelivery struct{}

func (MailtoDelivery) Deliver(_ context.Context, msg port.QuoteMessage) (port.Receipt, error) {
	return port.Receipt{RedirectURL: MailtoURL(msg)}, nil
}

func MailtoURL(msg port.QuoteMessage) string {
	return "mailto:" + msg.To +
		"?subject=" + escapeComponent(msg.Subject) +
		"&body=" + escapeComponent(msg.Body)
}

// escapeComponent escapes like encodeURIComponent: spaces become %20, not +.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
