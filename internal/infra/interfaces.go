package infra

import (
	"context"
	"log"
)

// Publisher delivers a domain event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// NoopPublisher only logs; it is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	log.Printf("event %s dropped: no broker configured", routingKey)
	return nil
}

var _ Publisher = NoopPublisher{}
