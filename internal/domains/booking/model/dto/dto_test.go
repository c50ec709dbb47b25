package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiethours/internal/domains/booking/model"
	"quiethours/internal/domains/booking/model/dto"
)

func TestCreateBookingRequest_ParseTimes(t *testing.T) {
	req := dto.CreateBookingRequest{
		PlaceID:   "0c7cfde3-358e-4e64-a3ee-7f2735ff1bcd",
		StartTime: "2026-03-01T09:00:00Z",
		EndTime:   "2026-03-01T11:00:00Z",
	}

	start, end, err := req.ParseTimes()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, end.Sub(start))
}

func TestCreateBookingRequest_ParseTimesInvalid(t *testing.T) {
	req := dto.CreateBookingRequest{
		StartTime: "tomorrow at nine",
		EndTime:   "2026-03-01T11:00:00Z",
	}

	_, _, err := req.ParseTimes()
	assert.Error(t, err)
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	req := dto.CreateBookingRequest{PlaceID: "place-1"}

	booking := req.ToModel("user-1", start, end, 15000)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, "place-1", booking.PlaceID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.InDelta(t, 45000, booking.TotalPrice, 0.001)
	assert.Equal(t, "user-1", booking.Metadata.CreatedBy)
}

func TestCreateBookingRequest_ToModelZeroRate(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	req := dto.CreateBookingRequest{PlaceID: "place-1"}

	booking := req.ToModel("user-1", start, end, 0)

	assert.Zero(t, booking.TotalPrice)
}

func TestBookingResponse_FromModel(t *testing.T) {
	notes := "window seat please"
	booking := model.Booking{
		ID:         "booking-1",
		UserID:     "user-1",
		PlaceID:    "place-1",
		StartTime:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		Status:     model.StatusConfirmed,
		TotalPrice: 30000,
		Notes:      &notes,
	}

	var response dto.BookingResponse
	response.FromModel(booking)

	assert.Equal(t, "booking-1", response.ID)
	assert.Equal(t, "2026-03-01T09:00:00Z", response.StartTime)
	assert.Equal(t, model.StatusConfirmed, response.Status)
	require.NotNil(t, response.Notes)
	assert.Equal(t, notes, *response.Notes)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	models := []model.BookingWithPlace{
		{
			Booking:      model.Booking{ID: "booking-1", Status: model.StatusPending},
			PlaceName:    "Library",
			PlaceAddress: "Main St 1",
		},
		{
			Booking:      model.Booking{ID: "booking-2", Status: model.StatusCompleted},
			PlaceName:    "Cafe",
			PlaceAddress: "Side St 2",
		},
	}

	var response dto.GetBookingsResponse
	response.FromModels(models, 42, 20)

	assert.Len(t, response.Bookings, 2)
	assert.Equal(t, "Library", response.Bookings[0].PlaceName)
	assert.Equal(t, 42, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
}
