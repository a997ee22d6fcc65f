package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{channel: ch, exchange: "storefront.exchange"}

	err := p.Publish(context.Background(), "order.created", map[string]any{"orderId": 7})
	require.NoError(t, err)

	assert.Equal(t, "storefront.exchange", ch.exchange)
	assert.Equal(t, "order.created", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.NotEmpty(t, ch.msg.MessageId)

	var got Message
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, ch.msg.MessageId, got.ID)
	assert.Equal(t, "order.created", got.Pattern)
	assert.Equal(t, float64(7), got.Data.(map[string]any)["orderId"])
}

func TestPublisher_PublishError(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	err := p.Publish(context.Background(), "order.deleted", nil)
	assert.ErrorContains(t, err, "channel closed")
}

func TestPublisher_MarshalError(t *testing.T) {
	p := &Publisher{channel: &fakeChannel{}, exchange: "x"}

	err := p.Publish(context.Background(), "order.created", make(chan int))
	assert.ErrorContains(t, err, "failed to marshal message")
}

type fakeDeclarer struct {
	name, kind                            string
	durable, autoDelete, internal, noWait bool
	err                                   error
}

func (f *fakeDeclarer) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.name, f.kind = name, kind
	f.durable, f.autoDelete, f.internal, f.noWait = durable, autoDelete, internal, noWait
	return f.err
}

func TestDefaultExchange_Declare(t *testing.T) {
	d := &fakeDeclarer{}
	require.NoError(t, DefaultExchange.declare(d, "storefront.exchange"))

	assert.Equal(t, "storefront.exchange", d.name)
	assert.Equal(t, "topic", d.kind)
	assert.True(t, d.durable)
	assert.False(t, d.autoDelete)
	assert.False(t, d.internal)
	assert.False(t, d.noWait)

	d.err = errors.New("access refused")
	err := DefaultExchange.declare(d, "storefront.exchange")
	assert.ErrorContains(t, err, "access refused")
	assert.ErrorContains(t, err, `"storefront.exchange"`)
}
