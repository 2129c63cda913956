package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/hgshop/internal/port"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the subset of *amqp.Channel used for delivery.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QuoteEnvelope is the payload published for each accepted quote.
type QuoteEnvelope struct {
	MessageID string    `json:"message_id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AMQPDelivery publishes quotes to a queue for someone to follow up on.
type AMQPDelivery struct {
	publisher Publisher
	queue     string
	now       func() time.Time
}

func NewAMQPDelivery(publisher Publisher, queue string) *AMQPDelivery {
	return &AMQPDelivery{
		publisher: publisher,
		queue:     queue,
		now:       time.Now,
	}
}

func (d *AMQPDelivery) Deliver(ctx context.Context, msg port.QuoteMessage) (port.Receipt, error) {
	env := QuoteEnvelope{
		MessageID: uuid.NewString(),
		To:        msg.To,
		Subject:   msg.Subject,
		Body:      msg.Body,
		FullName:  msg.FullName,
		Email:     msg.Email,
		Phone:     msg.Phone,
		CreatedAt: d.now().UTC(),
	}

	body, err := json.Marshal(env)
	if err != nil {
		return port.Receipt{}, fmt.Errorf("json.Marshal: %w", err)
	}

	err = d.publisher.PublishWithContext(ctx, "", d.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    env.MessageID,
		Timestamp:    env.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return port.Receipt{}, fmt.Errorf("publisher.PublishWithContext: %w", err)
	}

	return port.Receipt{MessageID: env.MessageID}, nil
}

// AMQPConn owns the broker connection and channel behind an AMQPDelivery.
type AMQPConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// DialAMQP connects and declares the durable quote queue.
func DialAMQP(uri, queue string) (*AMQPDelivery, *AMQPConn, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp.Dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("conn.Channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("ch.QueueDeclare: %w", err)
	}

	return NewAMQPDelivery(ch, q.Name), &AMQPConn{conn: conn, ch: ch}, nil
}

func (c *AMQPConn) Close() error {
	if err := c.ch.Close(); err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("ch.Close: %w", err)
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("conn.Close: %w", err)
	}
	return nil
}
