package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quiethours/config"
	"quiethours/infras/otel/mocks"
	bookingMocks "quiethours/internal/domains/booking/mocks"
	"quiethours/internal/domains/booking/model"
	"quiethours/internal/domains/booking/model/dto"
	"quiethours/internal/domains/booking/repository"
	"quiethours/internal/domains/booking/service"
	placeMocks "quiethours/internal/domains/place/mocks"
	placeModel "quiethours/internal/domains/place/model"
	eventMocks "quiethours/internal/events/mocks"
	cacheMocks "quiethours/shared/cache/mocks"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/failure"
)

func floatPtr(f float64) *float64 {
	return &f
}

func userContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func newService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *placeMocks.MockPlace, *eventMocks.MockPublisher, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockPlaceRepo := placeMocks.NewMockPlace(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockPlaceRepo, mockPublisher, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockPlaceRepo, mockPublisher, mockCache
}

func TestBookingService_Create(t *testing.T) {
	place := placeModel.Place{
		ID:         "place-1",
		Name:       "Library",
		HourlyRate: floatPtr(5.0),
	}

	validReq := dto.CreateBookingRequest{
		PlaceID:   "place-1",
		StartTime: "2026-09-01T09:00:00Z",
		EndTime:   "2026-09-01T11:00:00Z",
	}

	t.Run("prices by duration", func(t *testing.T) {
		svc, mockRepo, mockPlaceRepo, mockPublisher, mockCache := newService(t)

		mockPlaceRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(place, nil)

		mockRepo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, "user-1", booking.UserID)
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.InDelta(t, 10.0, booking.TotalPrice, 0.0001)

				return nil
			})

		mockPublisher.EXPECT().
			BookingCreated(gomock.Any(), gomock.Any())

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Create(userContext("user-1"), validReq)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.InDelta(t, 10.0, res.TotalPrice, 0.0001)
	})

	t.Run("zero rate yields free booking", func(t *testing.T) {
		svc, mockRepo, mockPlaceRepo, mockPublisher, mockCache := newService(t)

		freePlace := place
		freePlace.HourlyRate = nil

		mockPlaceRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(freePlace, nil)

		mockRepo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any()).
			Return(nil)

		mockPublisher.EXPECT().
			BookingCreated(gomock.Any(), gomock.Any())

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Create(userContext("user-1"), validReq)

		assert.NoError(t, err)
		assert.Zero(t, res.TotalPrice)
	})

	t.Run("end before start", func(t *testing.T) {
		svc, _, _, _, _ := newService(t)

		req := validReq
		req.StartTime = "2026-09-01T11:00:00Z"
		req.EndTime = "2026-09-01T09:00:00Z"

		_, err := svc.Create(userContext("user-1"), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("end equals start", func(t *testing.T) {
		svc, _, _, _, _ := newService(t)

		req := validReq
		req.EndTime = req.StartTime

		_, err := svc.Create(userContext("user-1"), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unparseable time", func(t *testing.T) {
		svc, _, _, _, _ := newService(t)

		req := validReq
		req.StartTime = "tomorrow morning"

		_, err := svc.Create(userContext("user-1"), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("place missing", func(t *testing.T) {
		svc, _, mockPlaceRepo, _, _ := newService(t)

		mockPlaceRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(placeModel.Place{}, nil)

		_, err := svc.Create(userContext("user-1"), validReq)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("overlap is a conflict", func(t *testing.T) {
		svc, mockRepo, mockPlaceRepo, _, _ := newService(t)

		mockPlaceRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(place, nil)

		mockRepo.EXPECT().
			CreateIfAvailable(gomock.Any(), gomock.Any()).
			Return(repository.ErrBookingConflict)

		_, err := svc.Create(userContext("user-1"), validReq)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	booking := model.BookingWithPlace{
		Booking: model.Booking{
			ID:     "booking-1",
			UserID: "user-1",
			Status: model.StatusPending,
		},
		PlaceName:    "Library",
		PlaceAddress: "Main St",
	}

	t.Run("owner reads own booking", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			GetWithPlace(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		res, err := svc.Get(userContext("user-1"), "booking-1")

		assert.NoError(t, err)
		assert.Equal(t, "booking-1", res.ID)
		assert.Equal(t, "Library", res.PlaceName)
	})

	t.Run("foreign booking is forbidden", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			GetWithPlace(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := svc.Get(userContext("user-2"), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			GetWithPlace(gomock.Any(), gomock.Any()).
			Return(model.BookingWithPlace{}, nil)

		_, err := svc.Get(userContext("user-1"), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	base := model.Booking{
		ID:     "booking-1",
		UserID: "user-1",
	}

	transitions := []struct {
		name     string
		current  string
		next     string
		wantCode int
	}{
		{name: "pending to confirmed", current: model.StatusPending, next: model.StatusConfirmed},
		{name: "pending to cancelled", current: model.StatusPending, next: model.StatusCancelled},
		{name: "confirmed to cancelled", current: model.StatusConfirmed, next: model.StatusCancelled},
		{name: "confirmed to confirmed", current: model.StatusConfirmed, next: model.StatusConfirmed, wantCode: 400},
		{name: "completed to cancelled", current: model.StatusCompleted, next: model.StatusCancelled, wantCode: 400},
		{name: "cancelled to cancelled", current: model.StatusCancelled, next: model.StatusCancelled, wantCode: 400},
		{name: "cancelled to confirmed", current: model.StatusCancelled, next: model.StatusConfirmed, wantCode: 400},
	}

	for _, tt := range transitions {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockPublisher, mockCache := newService(t)

			booking := base
			booking.Status = tt.current

			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(booking, nil)

			if tt.wantCode == 0 {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockPublisher.EXPECT().
					BookingStatusChanged(gomock.Any(), gomock.Any(), tt.current)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			}

			res, err := svc.UpdateStatus(userContext("user-1"), dto.UpdateBookingRequest{Status: tt.next}, booking.ID)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.next, res.Status)
		})
	}

	t.Run("foreign booking is forbidden", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		booking := base
		booking.Status = model.StatusPending

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := svc.UpdateStatus(userContext("user-2"), dto.UpdateBookingRequest{Status: model.StatusConfirmed}, booking.ID)

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	base := model.Booking{
		ID:     "booking-1",
		UserID: "user-1",
	}

	t.Run("cancel pending succeeds", func(t *testing.T) {
		svc, mockRepo, _, mockPublisher, mockCache := newService(t)

		booking := base
		booking.Status = model.StatusPending

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		mockPublisher.EXPECT().
			BookingStatusChanged(gomock.Any(), gomock.Any(), model.StatusPending)

		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Cancel(userContext("user-1"), booking.ID)

		assert.NoError(t, err)
	})

	t.Run("cancel completed fails", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		booking := base
		booking.Status = model.StatusCompleted

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := svc.Cancel(userContext("user-1"), booking.ID)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_GetMine(t *testing.T) {
	t.Run("defaults to newest start first", func(t *testing.T) {
		svc, mockRepo, _, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAllWithPlace(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.BookingWithPlace, error) {
				assert.Equal(t, "bookings.start_time", params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.BookingWithPlace{
					{Booking: model.Booking{ID: "booking-1", Status: model.StatusPending}, PlaceName: "Library"},
				}, nil
			})

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetMine(userContext("user-1"), gDto.QueryParams{Page: 1, Limit: 20}, "")

		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
	})

	t.Run("generic recency default is requalified", func(t *testing.T) {
		svc, mockRepo, _, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		mockRepo.EXPECT().
			GetAllWithPlace(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.BookingWithPlace, error) {
				assert.Equal(t, "bookings.start_time", params.SortBy)

				return nil, nil
			})

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		params := gDto.QueryParams{Page: 1, Limit: 20, SortBy: "created_at", SortDir: gDto.SortDirDesc}

		_, err := svc.GetMine(userContext("user-1"), params, "")

		assert.NoError(t, err)
	})

	t.Run("explicit sort is preserved", func(t *testing.T) {
		svc, mockRepo, _, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(assert.AnError)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, nil)

		mockRepo.EXPECT().
			GetAllWithPlace(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.BookingWithPlace, error) {
				assert.Equal(t, "bookings.end_time", params.SortBy)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return nil, nil
			})

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		params := gDto.QueryParams{Page: 1, Limit: 20, SortBy: "bookings.end_time", SortDir: gDto.SortDirAsc}

		_, err := svc.GetMine(userContext("user-1"), params, "")

		assert.NoError(t, err)
	})
}
