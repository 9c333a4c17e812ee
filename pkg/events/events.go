// Package events publishes booking lifecycle events to a message broker.
package events

import (
	"context"
	"fmt"
	"time"

	"fairway-booking/pkg/utils"

	"go.uber.org/zap"
)

type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingPaid          Type = "booking.paid"
	BookingPaymentFailed Type = "booking.payment_failed"
	BookingCancelled     Type = "booking.cancelled"
)

type Event struct {
	Type       Type      `json:"type"`
	BookingID  string    `json:"bookingId"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// NewPublisher picks the broker from EVENTS_DRIVER.
func NewPublisher(cfg utils.EventsConfig, log *zap.Logger) (Publisher, error) {
	switch cfg.Driver {
	case "", "none":
		log.Info("Lifecycle events disabled")
		return Noop{}, nil
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
	case "rabbitmq":
		return NewRabbitPublisher(cfg.RabbitURL, cfg.RabbitExchange)
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
