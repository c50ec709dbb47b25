package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"quiethours/config"
	"quiethours/infras/otel"
	"quiethours/internal/domains/favorite/model"
	"quiethours/internal/domains/favorite/model/dto"
	"quiethours/internal/domains/favorite/repository"
	placeModel "quiethours/internal/domains/place/model"
	placeRepo "quiethours/internal/domains/place/repository"
	"quiethours/shared"
	"quiethours/shared/cache"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/failure"
)

const cacheGetAllFavorite = "favorite:gets"

type Favorite interface {
	Add(ctx context.Context, req dto.AddFavoriteRequest) (dto.FavoriteResponse, error)
	Remove(ctx context.Context, placeID string) error
	List(ctx context.Context, params gDto.QueryParams) (dto.GetFavoritesResponse, error)
	Check(ctx context.Context, placeID string) (dto.CheckFavoriteResponse, error)
}

type serviceImpl struct {
	repo      repository.Favorite
	placeRepo placeRepo.Place
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Favorite, placeRepo placeRepo.Place, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Favorite {
	return &serviceImpl{
		repo:      repo,
		placeRepo: placeRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func pairFilter(userID, placeID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldPlaceID,
				Operator: gDto.FilterOperatorEq,
				Value:    placeID,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Add(ctx context.Context, req dto.AddFavoriteRequest) (res dto.FavoriteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Add")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	placeExists, err := s.placeRepo.Exist(ctx, shared.FilterByID(req.PlaceID, placeModel.FieldID, placeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if place exists")

		return res, fmt.Errorf("failed to check if place exists: %w", err)
	}

	if !placeExists {
		return res, failure.NotFound("place not found") // nolint:wrapcheck
	}

	exists, err := s.repo.Exist(ctx, pairFilter(user, req.PlaceID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if favorite exists")

		return res, fmt.Errorf("failed to check if favorite exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("place is already favorited") // nolint:wrapcheck
	}

	favorite := req.ToModel(user)

	err = s.repo.Insert(ctx, favorite)
	if errors.Is(err, repository.ErrDuplicateFavorite) {
		return res, failure.Conflict("place is already favorited") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to add favorite")

		return res, fmt.Errorf("failed to add favorite: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFavorite)
	}()

	res.FromModel(favorite)

	return res, nil
}

func (s *serviceImpl) Remove(ctx context.Context, placeID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := pairFilter(user, placeID)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if favorite exists")

		return fmt.Errorf("failed to check if favorite exists: %w", err)
	}

	if !exists {
		return failure.NotFound("favorite not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to remove favorite")

		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFavorite)
	}()

	return nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res dto.GetFavoritesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// Joined listing: qualify the recency sort so created_at is unambiguous.
	if params.SortBy == "" || params.SortBy == constant.DefaultValueSortBy {
		params.SortBy = model.TableName + "." + constant.FieldCreatedAt
	}

	if params.SortDir == "" {
		params.SortDir = gDto.SortDirDesc
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    model.TableName,
			},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFavorite, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for favorites")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count favorites")

		return res, fmt.Errorf("failed to count favorites: %w", err)
	}

	models, err := s.repo.GetAllWithPlace(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorites")

		return res, fmt.Errorf("failed to get favorites: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save favorites to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Check(ctx context.Context, placeID string) (res dto.CheckFavoriteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.repo.Exist(ctx, pairFilter(user, placeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check favorite")

		return res, fmt.Errorf("failed to check favorite: %w", err)
	}

	res.IsFavorite = exists

	return res, nil
}
