package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"quiethours/config"
	"quiethours/infras/kafka"
	"quiethours/infras/otel"
	bookingModel "quiethours/internal/domains/booking/model"
	"quiethours/shared/constant"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is the payload published to the booking events topic.
type BookingEvent struct {
	Event      string  `json:"event"`
	BookingID  string  `json:"booking_id"`
	UserID     string  `json:"user_id"`
	PlaceID    string  `json:"place_id"`
	Status     string  `json:"status"`
	PrevStatus string  `json:"prev_status,omitempty"`
	StartTime  string  `json:"start_time,omitempty"`
	EndTime    string  `json:"end_time,omitempty"`
	TotalPrice float64 `json:"total_price,omitempty"`
}

// Publisher emits booking lifecycle events. Publishing is best effort:
// failures are logged, never surfaced to the caller.
type Publisher interface {
	BookingCreated(ctx context.Context, booking bookingModel.Booking)
	BookingStatusChanged(ctx context.Context, booking bookingModel.Booking, prevStatus string)
}

type kafkaPublisher struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

type noopPublisher struct{}

func (noopPublisher) BookingCreated(context.Context, bookingModel.Booking) {}

func (noopPublisher) BookingStatusChanged(context.Context, bookingModel.Booking, string) {}

func New(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, booking events will not be published")

		return noopPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking bookingModel.Booking) {
	p.publish(ctx, BookingEvent{
		Event:      EventBookingCreated,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		PlaceID:    booking.PlaceID,
		Status:     booking.Status,
		StartTime:  booking.StartTime.Format(constant.DateFormat),
		EndTime:    booking.EndTime.Format(constant.DateFormat),
		TotalPrice: booking.TotalPrice,
	})
}

func (p *kafkaPublisher) BookingStatusChanged(ctx context.Context, booking bookingModel.Booking, prevStatus string) {
	p.publish(ctx, BookingEvent{
		Event:      EventBookingStatusChanged,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		PlaceID:    booking.PlaceID,
		Status:     booking.Status,
		PrevStatus: prevStatus,
	})
}

func (p *kafkaPublisher) publish(ctx context.Context, event BookingEvent) {
	topic := p.cfg.Kafka.Topic.BookingEvents

	go func() {
		c, scope := p.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+".publish")
		defer scope.End()

		scope.SetAttribute("event", event.Event)

		err := p.client.SendMessages(c, topic, kafka.Message{
			Key:   event.BookingID,
			Value: event,
		})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("event", event.Event).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
		}
	}()
}
