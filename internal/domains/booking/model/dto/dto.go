package dto

import (
	"time"

	"quiethours/internal/domains/booking/model"
	"quiethours/shared"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	gModel "quiethours/shared/model"
	"quiethours/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PlaceID   string  `json:"place_id"   validate:"required,uuid4"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time"   validate:"required"`
	Notes     *string `json:"notes,omitempty"`
}

// ParseTimes parses the RFC3339 inputs into the app timezone.
func (r *CreateBookingRequest) ParseTimes() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DateFormat, r.StartTime)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DateFormat, r.EndTime)

	return start, end, err
}

// ToModel builds a pending booking. Price is hourly rate times duration in
// hours; a zero rate yields a free booking.
func (r *CreateBookingRequest) ToModel(userID string, start, end time.Time, hourlyRate float64) model.Booking {
	totalPrice := hourlyRate * end.Sub(start).Hours()

	return model.Booking{
		ID:         uuid.NewString(),
		UserID:     userID,
		PlaceID:    r.PlaceID,
		StartTime:  start,
		EndTime:    end,
		Status:     model.StatusPending,
		TotalPrice: totalPrice,
		Notes:      r.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type UpdateBookingRequest struct {
	Status string  `json:"status" validate:"required,oneof=confirmed cancelled"`
	Notes  *string `json:"notes,omitempty"`
}

// UpdateBookingFields carries the db-tagged columns written by an update.
type UpdateBookingFields struct {
	Status string  `db:"status"`
	Notes  *string `db:"notes"`
}

type BookingResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	PlaceID    string  `json:"place_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	Notes      *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.PlaceID = model.PlaceID
	r.StartTime = model.StartTime.Format(constant.DateFormat)
	r.EndTime = model.EndTime.Format(constant.DateFormat)
	r.Status = model.Status
	r.TotalPrice = model.TotalPrice
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type BookingWithPlaceResponse struct {
	BookingResponse
	PlaceName    string  `json:"place_name"`
	PlaceAddress string  `json:"place_address"`
	PlaceImage   *string `json:"place_image,omitempty"`
}

func (r *BookingWithPlaceResponse) FromModel(model model.BookingWithPlace) {
	r.BookingResponse.FromModel(model.Booking)
	r.PlaceName = model.PlaceName
	r.PlaceAddress = model.PlaceAddress
	r.PlaceImage = model.PlaceImage
}

type GetBookingsResponse struct {
	Bookings  []BookingWithPlaceResponse `json:"bookings"`
	TotalPage int                        `json:"total_page"`
	TotalData int                        `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingWithPlace, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingWithPlaceResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
