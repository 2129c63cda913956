package port

import "context"

type QuoteMessage struct {
	To      string
	Subject string
	Body    string

	FullName string
	Email    string
	Phone    string
}

// Receipt describes what happened to a delivered quote.
// RedirectURL is set when the visitor's client has to finish the hand-off.
type Receipt struct {
	RedirectURL string
	MessageID   string
}

type QuoteDelivery interface {
	Deliver(ctx context.Context, msg QuoteMessage) (Receipt, error)
}
