package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/coworkflow/coworkflow/internal/logs"
)

// Publisher sends domain events to a named queue.  Publishing is
// best-effort: callers log the error and carry on.
type Publisher interface {
	Publish(ctx context.Context, queue string, event any) error
}

// AMQPPublisher publishes JSON events to RabbitMQ.  It dials per publish,
// so a broker outage never blocks service startup.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, DialTimeout: 2 * time.Second}
}

// Publish declares queue as durable and sends event as a persistent
// message on the default exchange.
func (p *AMQPPublisher) Publish(ctx context.Context, queue string, event any) error {
	log := logs.For("rabbitmq").WithField("queue", queue)

	body, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("marshal event failed")
		return err
	}

	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.DialTimeout)})
	if err != nil {
		log.WithError(err).Warn("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Warn("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.WithError(err).Warn("queue declare failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		log.WithError(err).Warn("publish failed")
		return err
	}
	return nil
}

// AsyncPublisher hands each event to Next on its own goroutine so a slow or
// unreachable broker never holds up the request that produced the event.
// Publish always returns nil; Next logs its own failures.
type AsyncPublisher struct {
	Next    Publisher
	Timeout time.Duration

	wg sync.WaitGroup
}

func NewAsyncPublisher(next Publisher) *AsyncPublisher {
	return &AsyncPublisher{Next: next, Timeout: 5 * time.Second}
}

// Publish detaches from ctx's cancellation, keeping its values, and bounds
// the background send by Timeout.
func (p *AsyncPublisher) Publish(ctx context.Context, queue string, event any) error {
	bg := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(bg, p.Timeout)
		defer cancel()
		_ = p.Next.Publish(ctx, queue, event)
	}()
	return nil
}

// Wait blocks until every in-flight publish has finished.
func (p *AsyncPublisher) Wait() { p.wg.Wait() }

// NopPublisher drops every event.  Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

// PublisherFor returns an AMQPPublisher for url, or a NopPublisher when url
// is empty.
func PublisherFor(url string) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return NewAMQPPublisher(url)
}
