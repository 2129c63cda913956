package quote

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nikolayk812/hgshop/internal/cart"
	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/nikolayk812/hgshop/internal/port"
	"go.uber.org/zap"
)

const (
	ValidationMessage = "Please provide your name and at least an email or phone number."
	EmptyOrderSummary = "No items in cart."
)

var ErrInvalidQuote = errors.New("invalid quote request")

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidQuote
}

type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateAccepted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateAccepted:
		return "accepted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Form is the quote form as submitted.
type Form struct {
	FullName string
	Email    string
	Phone    string
	Message  string
}

func (f Form) trimmed() Form {
	return Form{
		FullName: strings.TrimSpace(f.FullName),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Message:  strings.TrimSpace(f.Message),
	}
}

// Request is built on an accepted submit and discarded after delivery.
type Request struct {
	FullName     string
	ContactEmail string
	ContactPhone string
	Message      string
	Summary      []string
	Subtotal     domain.Money
}

// Validate checks presence only. Email and phone formats are not inspected.
func Validate(f Form) error {
	f = f.trimmed()
	if f.FullName == "" || (f.Email == "" && f.Phone == "") {
		return &ValidationError{Message: ValidationMessage}
	}
	return nil
}

type Composer struct {
	to        string
	delivery  port.QuoteDelivery
	formatter domain.MoneyFormatter
	logger    *zap.Logger
	state     State
}

func NewComposer(to string, delivery port.QuoteDelivery, formatter domain.MoneyFormatter, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Composer{
		to:        to,
		delivery:  delivery,
		formatter: formatter,
		logger:    logger,
	}
}

func (c *Composer) State() State {
	return c.state
}

// Submit validates the form and hands the composed message to delivery.
// A rejected form never reaches delivery and leaves the cart untouched.
func (c *Composer) Submit(ctx context.Context, form Form, store *cart.Store) (port.Receipt, error) {
	c.state = StateValidating

	form = form.trimmed()
	if err := Validate(form); err != nil {
		c.state = StateRejected
		c.logger.Info("quote rejected", zap.String("reason", err.Error()))
		return port.Receipt{}, err
	}

	req := Request{
		FullName:     form.FullName,
		ContactEmail: form.Email,
		ContactPhone: form.Phone,
		Message:      form.Message,
		Summary:      slices.Collect(store.SummaryLines()),
		Subtotal:     store.Subtotal(),
	}

	msg := c.Compose(req)

	receipt, err := c.delivery.Deliver(ctx, msg)
	if err != nil {
		c.state = StateIdle
		return port.Receipt{}, fmt.Errorf("delivery.Deliver: %w", err)
	}

	c.state = StateAccepted
	c.logger.Info("quote accepted",
		zap.Int("lines", len(req.Summary)),
		zap.String("subtotal", req.Subtotal.Amount.String()),
		zap.String("message_id", receipt.MessageID),
	)

	return receipt, nil
}

func (c *Composer) Compose(req Request) port.QuoteMessage {
	return port.QuoteMessage{
		To:       c.to,
		Subject:  Subject(req.FullName),
		Body:     Body(req, c.formatter),
		FullName: req.FullName,
		Email:    req.ContactEmail,
		Phone:    req.ContactPhone,
	}
}

func Subject(fullName string) string {
	return "Quote Request — " + fullName
}

func OrderSummary(lines []string) string {
	if len(lines) == 0 {
		return EmptyOrderSummary
	}
	return strings.Join(lines, "\n")
}

func Body(req Request, f domain.MoneyFormatter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", req.FullName)
	fmt.Fprintf(&b, "Email: %s\n", req.ContactEmail)
	fmt.Fprintf(&b, "Phone: %s\n", req.ContactPhone)
	b.WriteString("\nOrder Details:\n")
	b.WriteString(OrderSummary(req.Summary))
	fmt.Fprintf(&b, "\n\nTotal (approx): %s\n", f.Format(req.Subtotal))
	b.WriteString("\nMessage:\n")
	b.WriteString(req.Message)

	return b.String()
}
