package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"storefront/internal/infra"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
}

var _ infra.Publisher = (*Publisher)(nil)

// Message is the JSON envelope written to the exchange.
type Message struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
	Data    any    `json:"data"`
}

// ExchangeOptions describes the exchange order events are written to.
type ExchangeOptions struct {
	Kind       string
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
}

// DefaultExchange is a durable topic exchange, so consumers can bind on
// order.* patterns.
var DefaultExchange = ExchangeOptions{Kind: "topic", Durable: true}

type exchangeDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
}

func (o ExchangeOptions) declare(ch exchangeDeclarer, name string) error {
	if err := ch.ExchangeDeclare(name, o.Kind, o.Durable, o.AutoDelete, o.Internal, o.NoWait, nil); err != nil {
		return fmt.Errorf("declare %s exchange %q: %w", o.Kind, name, err)
	}
	return nil
}

// NewPublisher dials the broker and declares exchange with DefaultExchange.
func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := DefaultExchange.declare(ch, exchange); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func newMessage(pattern string, data any) Message {
	return Message{
		ID:      uuid.NewString(),
		Pattern: pattern,
		Data:    data,
	}
}

func (p *Publisher) Publish(ctx context.Context, pattern string, data any) error {
	message := newMessage(pattern, data)

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	log.Printf("publishing %s (%s) to exchange %s", pattern, message.ID, p.exchange)

	err = p.channel.Publish(
		p.exchange,
		pattern,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    message.ID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
