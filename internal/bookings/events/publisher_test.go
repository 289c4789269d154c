package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registrar/pkg/kafka"
	"registrar/pkg/model"
)

type recordingProducer struct {
	published []kafka.Message
}

func (r *recordingProducer) Publish(ctx context.Context, msg kafka.Message) error {
	r.published = append(r.published, msg)
	return nil
}

func TestKafkaPublisher_BookingCreated(t *testing.T) {
	rec := &recordingProducer{}
	p := &kafkaPublisher{producer: rec}

	booking := &model.Booking{
		ID:         "665f1c2e8b3e4a0012345678",
		PersonName: "John Doe",
		ChurchName: "First Baptist",
		State:      "TX",
		Date:       model.NewDate(2024, time.May, 1),
		Mobile:     "+15124634630",
	}

	require.NoError(t, p.BookingCreated(context.Background(), booking, "req-42"))
	require.Len(t, rec.published, 1)

	msg := rec.published[0]
	assert.Equal(t, "TX", msg.Key)
	assert.Equal(t, EventBookingCreated, msg.Headers[kafka.HeaderEventType])
	assert.Equal(t, "req-42", msg.Headers[kafka.HeaderCorrelationID])
	assert.Equal(t, Source, msg.Headers[kafka.HeaderSource])
	assert.NotEmpty(t, msg.EventID())

	var event BookingCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, booking.ID, event.BookingID)
	assert.Equal(t, "2024-05-01", event.Date)
	assert.NotContains(t, string(msg.Value), "+15124634630", "contact details stay out of events")
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NewNoopPublisher().BookingCreated(context.Background(), &model.Booking{}, ""))
}
