package quote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/nikolayk812/hgshop/internal/port"
	"github.com/nikolayk812/hgshop/internal/quote"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailtoDelivery(t *testing.T) {
	msg := port.QuoteMessage{
		To:      to,
		Subject: "Quote Request — Jo & Co",
		Body:    "Name: Jo & Co\nTotal (approx): R1,050.00 +VAT?",
	}

	receipt, err := quote.MailtoDelivery{}.Deliver(t.Context(), msg)
	require.NoError(t, err)

	link := receipt.RedirectURL
	require.True(t, strings.HasPrefix(link, "mailto:"+to+"?subject="))
	assert.NotContains(t, link, "+")
	assert.NotContains(t, link, " ")
	assert.Contains(t, link, "Quote%20Request%20%E2%80%94%20Jo%20%26%20Co")

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, msg.Subject, q.Get("subject"))
	assert.Equal(t, msg.Body, q.Get("body"))
}

type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

func TestAMQPDelivery(t *testing.T) {
	pub := &fakePublisher{}
	d := quote.NewAMQPDelivery(pub, "quotes")

	receipt, err := d.Deliver(t.Context(), port.QuoteMessage{
		To:       to,
		Subject:  "Quote Request — Lerato",
		Body:     "body",
		FullName: "Lerato",
		Email:    "l@example.com",
	})
	require.NoError(t, err)

	assert.Empty(t, pub.exchange)
	assert.Equal(t, "quotes", pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, receipt.MessageID, pub.msg.MessageId)
	assert.Empty(t, receipt.RedirectURL)

	var env quote.QuoteEnvelope
	require.NoError(t, json.Unmarshal(pub.msg.Body, &env))
	assert.Equal(t, receipt.MessageID, env.MessageID)
	assert.Equal(t, "Quote Request — Lerato", env.Subject)
	assert.Equal(t, "l@example.com", env.Email)
	assert.Empty(t, env.Phone)
}

func TestAMQPDelivery_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	d := quote.NewAMQPDelivery(&fakePublisher{err: boom}, "quotes")

	_, err := d.Deliver(t.Context(), port.QuoteMessage{To: to})
	require.ErrorIs(t, err, boom)
}
