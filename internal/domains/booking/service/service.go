package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"quiethours/config"
	"quiethours/infras/otel"
	"quiethours/internal/domains/booking/model"
	"quiethours/internal/domains/booking/model/dto"
	"quiethours/internal/domains/booking/repository"
	placeModel "quiethours/internal/domains/place/model"
	placeRepo "quiethours/internal/domains/place/repository"
	"quiethours/internal/events"
	"quiethours/shared"
	"quiethours/shared/cache"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/failure"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingWithPlaceResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	placeRepo placeRepo.Place
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Booking, placeRepo placeRepo.Place, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		placeRepo: placeRepo,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, end, err := req.ParseTimes()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !end.After(start) {
		return res, failure.BadRequestFromString("end_time must be after start_time") // nolint:wrapcheck
	}

	place, err := s.placeRepo.Get(ctx, shared.FilterByID(req.PlaceID, placeModel.FieldID, placeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get place")

		return res, fmt.Errorf("failed to get place: %w", err)
	}

	if place.ID == constant.Empty {
		return res, failure.NotFound("place not found") // nolint:wrapcheck
	}

	hourlyRate := 0.0
	if place.HourlyRate != nil {
		hourlyRate = *place.HourlyRate
	}

	booking := req.ToModel(user, start, end, hourlyRate)

	err = s.repo.CreateIfAvailable(ctx, booking)
	if errors.Is(err, repository.ErrBookingConflict) {
		return res, failure.Conflict("place is already booked for this time window") // nolint:wrapcheck
	}

	if errors.Is(err, repository.ErrPlaceNotFound) {
		return res, failure.NotFound("place not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publisher.BookingCreated(ctx, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// Joined listing: the generic created_at default is ambiguous here, and
	// bookings are listed newest start first.
	if params.SortBy == "" || params.SortBy == constant.DefaultValueSortBy {
		params.SortBy = model.TableName + "." + model.FieldStartTime
	}

	if params.SortDir == "" {
		params.SortDir = gDto.SortDirDesc
	}

	filters := []any{
		gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    user,
			Table:    model.TableName,
		},
	}

	if status != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	filter := gDto.FilterGroup{Filters: filters}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllWithPlace(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingWithPlaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.repo.GetWithPlace(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != user {
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// UpdateStatus drives the booking state machine: pending -> confirmed, and
// pending or confirmed -> cancelled. Completion is only ever set by the
// background sweep.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != user {
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	if err = validateTransition(booking.Status, req.Status); err != nil {
		return res, err
	}

	prevStatus := booking.Status

	fields := dto.UpdateBookingFields{
		Status: req.Status,
		Notes:  req.Notes,
	}

	updatedFields := shared.TransformFields(fields, user)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	booking.Status = req.Status
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	s.publisher.BookingStatusChanged(ctx, booking, prevStatus)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

// Cancel is the DELETE path: same guard as the status update, a completed
// or already cancelled booking cannot be cancelled.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, err = s.UpdateStatus(ctx, dto.UpdateBookingRequest{Status: model.StatusCancelled}, id)

	return err
}

func validateTransition(current, next string) error {
	switch next {
	case model.StatusConfirmed:
		if current == model.StatusPending {
			return nil
		}
	case model.StatusCancelled:
		if current == model.StatusPending || current == model.StatusConfirmed {
			return nil
		}
	}

	return failure.BadRequestFromString(fmt.Sprintf("invalid status transition from %s to %s", current, next)) // nolint:wrapcheck
}
