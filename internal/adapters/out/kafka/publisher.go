// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"bookstore/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderTransitionedMessage is the JSON payload of an order event.
type OrderTransitionedMessage struct {
	EventID        string    `json:"eventId"`
	EventType      string    `json:"eventType"`
	OrderID        int64     `json:"orderId"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	OccurredAt     time.Time `json:"occurredAt"`
}

const orderTransitionedType = "OrderTransitioned"

// OrderEventPublisher writes order events keyed by order id, so events of one
// order land in one partition and keep their order.
type OrderEventPublisher struct {
	writer MessageWriter
}

// NewWriter creates a kafka-go writer for the topic.
func NewWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func NewOrderEventPublisher(writer MessageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

func (p *OrderEventPublisher) PublishTransitioned(ctx context.Context, event order.Transitioned) error {
	payload, err := json.Marshal(OrderTransitionedMessage{
		EventID:        event.EventID.String(),
		EventType:      orderTransitionedType,
		OrderID:        event.OrderID.Int64(),
		PreviousStatus: event.PreviousStatus.String(),
		NewStatus:      event.NewStatus.String(),
		OccurredAt:     event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID.Int64(), 10)),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(orderTransitionedType)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransitioned(context.Context, order.Transitioned) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
