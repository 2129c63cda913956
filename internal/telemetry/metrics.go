package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments are the shop's business counters.
type Instruments struct {
	cartMutations    metric.Int64Counter
	quoteSubmissions metric.Int64Counter
}

func NewInstruments(meter metric.Meter) (*Instruments, error) {
	cartMutations, err := meter.Int64Counter(
		"cart.mutations",
		metric.WithDescription("Cart mutations by operation"),
	)
	if err != nil {
		return nil, err
	}

	quoteSubmissions, err := meter.Int64Counter(
		"quote.submissions",
		metric.WithDescription("Quote submissions by result"),
	)
	if err != nil {
		return nil, err
	}

	return &Instruments{
		cartMutations:    cartMutations,
		quoteSubmissions: quoteSubmissions,
	}, nil
}

func (i *Instruments) CartMutation(ctx context.Context, operation string) {
	i.cartMutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (i *Instruments) QuoteSubmission(ctx context.Context, result string) {
	i.quoteSubmissions.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
