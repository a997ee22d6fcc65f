package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"storefront/internal/infra"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Producer writes every event to one topic, keyed by its routing key so
// that events of one kind stay ordered.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

var _ infra.Publisher = (*Producer)(nil)

type envelope struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
	Data    any    `json:"data"`
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start kafka producer: %w", err)
	}
	log.Printf("kafka producer connected to %v", brokers)
	return NewProducerWith(producer, topic), nil
}

func NewProducerWith(producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: producer, topic: topic}
}

func (p *Producer) Publish(ctx context.Context, routingKey string, data any) error {
	id := uuid.NewString()
	body, err := json.Marshal(envelope{ID: id, Pattern: routingKey, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(routingKey),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("message-id"), Value: []byte(id)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send %s event: %w", routingKey, err)
	}
	log.Printf("published %s to %s[%d]@%d", routingKey, p.topic, partition, offset)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
