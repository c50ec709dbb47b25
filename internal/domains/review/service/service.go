package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"quiethours/config"
	"quiethours/infras/otel"
	placeModel "quiethours/internal/domains/place/model"
	placeRepo "quiethours/internal/domains/place/repository"
	"quiethours/internal/domains/review/model/dto"
	"quiethours/internal/domains/review/repository"
	"quiethours/shared"
	"quiethours/shared/cache"
	"quiethours/shared/constant"
	"quiethours/shared/failure"
)

// Place detail responses embed reviews, so a new review has to drop the
// cached detail entry.
const cacheGetPlace = "place:get"

// Review is append-only: there is no edit or delete path, and the place
// rating aggregate is deliberately not recomputed here.
type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
}

type serviceImpl struct {
	repo      repository.Review
	placeRepo placeRepo.Place
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Review, placeRepo placeRepo.Place, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:      repo,
		placeRepo: placeRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.Rating < 1 || req.Rating > 5 {
		return res, failure.BadRequestFromString("rating must be between 1 and 5") // nolint:wrapcheck
	}

	placeExists, err := s.placeRepo.Exist(ctx, shared.FilterByID(req.PlaceID, placeModel.FieldID, placeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if place exists")

		return res, fmt.Errorf("failed to check if place exists: %w", err)
	}

	if !placeExists {
		return res, failure.NotFound("place not found") // nolint:wrapcheck
	}

	review := req.ToModel(user)

	if err = s.repo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPlace, req.PlaceID)); err != nil {
			log.Error().Err(err).Msg("failed to delete place from cache")
		}
	}()

	res.FromModel(review)

	return res, nil
}
