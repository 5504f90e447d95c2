package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/coworkflow/coworkflow/internal/logs"
)

// Queues consumed by StartEventConsumer.
var ConsumedQueues = []string{ReservationCreatedQueue, NotificationSentQueue}

// StartEventConsumer connects to RabbitMQ, declares every queue in
// ConsumedQueues (durable) and appends each delivery to the file at
// logPath as one line.  It reconnects with exponential backoff on any
// broker failure and returns only when ctx is done.  Messages that cannot
// be handled are rejected without requeue so a bad payload cannot spin.
func StartEventConsumer(ctx context.Context, url, logPath string) error {
	log := logs.For("event-consumer")
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("dial failed; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logPath)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).Warn("consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

type delivery struct {
	queue string
	amqp.Delivery
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logPath string) error {
	log := logs.For("event-consumer")
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.WithError(err).Warn("set QoS failed")
	}

	merged := make(chan delivery)
	done := make(chan struct{})
	defer close(done)
	for _, q := range ConsumedQueues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", q, err)
		}
		msgs, err := ch.Consume(q, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", q, err)
		}
		go func(q string, msgs <-chan amqp.Delivery) {
			for d := range msgs {
				select {
				case merged <- delivery{queue: q, Delivery: d}:
				case <-done:
					return
				}
			}
			select {
			case merged <- delivery{queue: q}:
			case <-done:
			}
		}(q, msgs)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d := <-merged:
			if d.Acknowledger == nil {
				return errors.New("deliveries channel closed for " + d.queue)
			}
			if err := handleMessage(logPath, d.queue, d.Body); err != nil {
				log.WithError(err).WithField("queue", d.queue).Error("handle message failed")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(logPath, queue string, body []byte) error {
	var line string
	switch queue {
	case ReservationCreatedQueue:
		var ev ReservationCreatedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Reservation created | reservation_id=%d | user_id=%d | space_id=%d | start=%s | end=%s | total=%.2f\n",
			ev.CreatedAt, ev.ReservationID, ev.UserID, ev.SpaceID, ev.StartTime, ev.EndTime, ev.TotalPrice)
	case NotificationSentQueue:
		var ev NotificationEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		line = fmt.Sprintf("[%s] Notification sent | channel=%s | to=%s | subject=%q\n",
			ev.SentAt, ev.Channel, ev.Recipient, ev.Subject)
	default:
		return fmt.Errorf("unknown queue %q", queue)
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
