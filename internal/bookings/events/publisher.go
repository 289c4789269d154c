package events

import (
	"context"
	"time"

	"registrar/pkg/kafka"
	"registrar/pkg/model"
)

const (
	EventBookingCreated = "booking.created"
	SchemaVersion       = "1"
	Source              = "registrar"
)

// Publisher announces accepted bookings to other systems.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking, correlationID string) error
}

// BookingCreatedEvent is the payload of a booking.created message.
type BookingCreatedEvent struct {
	BookingID  string    `json:"bookingId"`
	PersonName string    `json:"personName"`
	ChurchName string    `json:"churchName"`
	State      string    `json:"state"`
	Date       string    `json:"date"`
	OccurredAt time.Time `json:"occurredAt"`
}

type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer messagePublisher
}

func NewKafkaPublisher(producer *kafka.Producer) Publisher {
	return &kafkaPublisher{producer: producer}
}

// Messages are keyed by state so that events for one state stay ordered.
func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking, correlationID string) error {
	msg, err := kafka.NewMessage().
		WithKey(booking.State).
		WithValue(BookingCreatedEvent{
			BookingID:  booking.ID,
			PersonName: booking.PersonName,
			ChurchName: booking.ChurchName,
			State:      booking.State,
			Date:       booking.Date.String(),
			OccurredAt: time.Now().UTC(),
		}).
		WithEventType(EventBookingCreated).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(correlationID).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingCreated(context.Context, *model.Booking, string) error {
	return nil
}
