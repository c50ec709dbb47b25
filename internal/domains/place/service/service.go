package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"quiethours/config"
	"quiethours/infras/otel"
	"quiethours/infras/photon"
	"quiethours/internal/domains/place/model"
	"quiethours/internal/domains/place/model/dto"
	"quiethours/internal/domains/place/repository"
	reviewRepo "quiethours/internal/domains/review/repository"
	"quiethours/shared"
	"quiethours/shared/cache"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPlace    = "place:get"
	cacheGetAllPlace = "place:gets"
	cacheCountPlace  = "place:count"
)

type Place interface {
	Nearby(ctx context.Context, lat, lng, radiusMeters float64) (dto.NearbyPlacesResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPlacesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PlaceDetailResponse, error)
	Search(ctx context.Context, req dto.SearchPlacesRequest) (dto.SearchPlacesResponse, error)
	GetOrCreate(ctx context.Context, req dto.CreatePlaceRequest) (dto.PlaceResponse, bool, error)
}

type serviceImpl struct {
	repo       repository.Place
	reviewRepo reviewRepo.Review
	photon     photon.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Place, reviewRepo reviewRepo.Review, photon photon.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Place {
	return &serviceImpl{
		repo:       repo,
		reviewRepo: reviewRepo,
		photon:     photon,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Nearby(ctx context.Context, lat, lng, radiusMeters float64) (res dto.NearbyPlacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Nearby")
	defer scope.End()
	defer scope.TraceIfError(err)

	if radiusMeters <= 0 {
		radiusMeters = constant.DefaultNearbyRadiusM
	}

	places, err := s.repo.Nearby(ctx, lat, lng, radiusMeters)
	if err != nil {
		log.Error().Err(err).Msg("failed to get nearby places")

		return res, fmt.Errorf("failed to get nearby places: %w", err)
	}

	res.FromModels(places)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPlacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPlace, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for places")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count places")

		return res, fmt.Errorf("failed to count places: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get places")

		return res, fmt.Errorf("failed to get places: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save places to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPlace, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for place count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count places")

		return res, fmt.Errorf("failed to count places: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save place count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PlaceDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPlace, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for place")

		return res, nil
	}

	place, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get place")

		return res, fmt.Errorf("failed to get place: %w", err)
	}

	if place.ID == constant.Empty {
		return res, failure.NotFound("place not found") // nolint:wrapcheck
	}

	reviews, err := s.reviewRepo.GetByPlace(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get place reviews")

		return res, fmt.Errorf("failed to get place reviews: %w", err)
	}

	res.FromModel(place, reviews)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save place to cache")
		}
	}()

	return res, nil
}

// Search consults the external geocoder first and falls back to a local
// substring match when it fails or comes back empty. External results are
// not persisted here.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchPlacesRequest) (res dto.SearchPlacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	results, photonErr := s.photon.Search(ctx, req.Query, req.Latitude, req.Longitude)
	if photonErr == nil && len(results) > 0 {
		res.FromPhotonResults(results)

		return res, nil
	}

	if photonErr != nil {
		log.Warn().Err(photonErr).Str("query", req.Query).Msg("external search failed, falling back to local")
	}

	places, err := s.repo.SearchLocal(ctx, req.Query)
	if err != nil {
		log.Error().Err(err).Msg("failed to search places locally")

		return res, fmt.Errorf("failed to search places locally: %w", err)
	}

	res.FromModels(places)

	return res, nil
}

// GetOrCreate dedupes by external id first, then by the (name, address)
// pair, so viewing the same externally discovered place twice never creates
// a duplicate row. The returned bool reports whether a row was inserted.
func (s *serviceImpl) GetOrCreate(ctx context.Context, req dto.CreatePlaceRequest) (res dto.PlaceResponse, created bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOrCreate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.findExisting(ctx, req)
	if err != nil {
		return res, false, err
	}

	if existing.ID != constant.Empty {
		res.FromModel(existing)

		return res, false, nil
	}

	place := req.ToModel(user)

	if err = s.repo.Insert(ctx, place); err != nil {
		log.Error().Err(err).Msg("failed to create place")

		return res, false, fmt.Errorf("failed to create place: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPlace)
		shared.InvalidateCaches(c, s.cache, cacheCountPlace)
	}()

	res.FromModel(place)

	return res, true, nil
}

func (s *serviceImpl) findExisting(ctx context.Context, req dto.CreatePlaceRequest) (place model.Place, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".findExisting")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.ExternalID != nil && *req.ExternalID != constant.Empty {
		filter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldExternalID,
					Operator: gDto.FilterOperatorEq,
					Value:    *req.ExternalID,
					Table:    model.TableName,
				},
			},
		}

		place, err = s.repo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to look up place by external id")

			return place, fmt.Errorf("failed to look up place by external id: %w", err)
		}

		if place.ID != constant.Empty {
			return place, nil
		}
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Name,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldAddress,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Address,
				Table:    model.TableName,
			},
		},
	}

	place, err = s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up place by name and address")

		return place, fmt.Errorf("failed to look up place by name and address: %w", err)
	}

	return place, nil
}
