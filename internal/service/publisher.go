// Package service publishes domain events to RabbitMQ. Failures are logged
// and returned; callers treat publishing as best effort.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/timelazy/timelazy-server/internal/queue"
)

// Publisher sends events to the broker at URL, dialing per publish.
type Publisher struct {
	URL string
}

// NewPublisher returns a Publisher for url.
func NewPublisher(url string) *Publisher {
	return &Publisher{URL: url}
}

// PublishSeatingGenerated sends ev to the seating.generated queue as a
// persistent message. A missing EventID or GeneratedAt is filled in.
func (p *Publisher) PublishSeatingGenerated(ctx context.Context, ev queue.SeatingGeneratedEvent) error {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.GeneratedAt == "" {
		ev.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.SeatingGeneratedQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.SeatingGeneratedQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
