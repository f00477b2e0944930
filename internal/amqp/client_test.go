package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	declared   []string
	published  []amqp091.Publishing
	routingKey string
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error {
	f.declared = append(f.declared, "exchange:"+name+":"+kind)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error) {
	f.declared = append(f.declared, "queue:"+name)
	return amqp091.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error {
	f.declared = append(f.declared, "bind:"+name+"->"+exchange)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.routingKey = key
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestSetupDeclaresTopology(t *testing.T) {
	ch := &fakeChannel{}
	c := newClientWithChannel(ch, "expenses", "expense_events")
	if err := c.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	want := []string{"exchange:expenses:direct", "queue:expense_events", "bind:expense_events->expenses"}
	if len(ch.declared) != len(want) {
		t.Fatalf("declared %v, want %v", ch.declared, want)
	}
	for i := range want {
		if ch.declared[i] != want[i] {
			t.Errorf("declared[%d] = %q, want %q", i, ch.declared[i], want[i])
		}
	}
}

func TestPublishExpenseEvent(t *testing.T) {
	ch := &fakeChannel{}
	c := newClientWithChannel(ch, "expenses", "expense_events")

	if err := c.PublishExpenseEvent(context.Background(), 42, OpUpdated); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(ch.published) != 1 {
		t.Fatalf("expected 1 message, got %d", len(ch.published))
	}
	pub := ch.published[0]
	if ch.routingKey != "expense_events" {
		t.Errorf("routing key = %q", ch.routingKey)
	}
	if pub.DeliveryMode != amqp091.Persistent {
		t.Errorf("expected persistent delivery")
	}
	if pub.Type != "expense.updated" {
		t.Errorf("type = %q", pub.Type)
	}

	var msg ExpenseEventMessage
	if err := json.Unmarshal(pub.Body, &msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.ID != 42 || msg.Op != OpUpdated || msg.Timestamp.IsZero() {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestPublishExpenseEventError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	c := newClientWithChannel(ch, "expenses", "expense_events")

	err := c.PublishExpenseEvent(context.Background(), 1, OpCreated)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ch.publishErr) {
		t.Errorf("expected wrapped publish error, got %v", err)
	}
}

func TestCloseWithoutConnection(t *testing.T) {
	ch := &fakeChannel{}
	c := newClientWithChannel(ch, "x", "y")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !ch.closed {
		t.Error("expected channel to be closed")
	}
}
