package model

import (
	"time"

	"quiethours/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldUserID     = "user_id"
	FieldPlaceID    = "place_id"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldStatus     = "status"
	FieldTotalPrice = "total_price"
	FieldNotes      = "notes"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	PlaceID    string    `db:"place_id"`
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
	Status     string    `db:"status"`
	TotalPrice float64   `db:"total_price"`
	Notes      *string   `db:"notes"`
	model.Metadata
}

// IsActive reports whether the booking still blocks its time window.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BookingWithPlace joins the booked place's summary for listings.
type BookingWithPlace struct {
	Booking
	PlaceName    string  `db:"place_name"    table:"places" column:"name"`
	PlaceAddress string  `db:"place_address" table:"places" column:"address"`
	PlaceImage   *string `db:"place_image"   table:"places" column:"image"`
}

func (b BookingWithPlace) GetJoinQuery() string {
	return "JOIN places ON places.id = bookings.place_id"
}
