package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"quiethours/infras/otel"
	"quiethours/infras/postgres"
	"quiethours/internal/domains/place/model"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/logger"
	gRepo "quiethours/shared/repository"
)

// haversineExpr computes the great-circle distance in meters between the
// query point and each stored coordinate. LEAST/GREATEST clamp the cosine
// into [-1,1] against floating point drift.
const haversineExpr = `6371000 * ACOS(LEAST(1, GREATEST(-1,
		COS(RADIANS(:lat)) * COS(RADIANS(latitude)) * COS(RADIANS(longitude) - RADIANS(:lng))
		+ SIN(RADIANS(:lat)) * SIN(RADIANS(latitude)))))`

type Place interface {
	Insert(ctx context.Context, model model.Place) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Place, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Place, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Nearby(ctx context.Context, lat, lng, radiusMeters float64) ([]model.PlaceWithDistance, error)
	SearchLocal(ctx context.Context, term string) ([]model.Place, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Place]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Place {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Place](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) Nearby(ctx context.Context, lat, lng, radiusMeters float64) ([]model.PlaceWithDistance, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".place.Nearby")
	defer scope.End()

	query := fmt.Sprintf(`SELECT * FROM (
			SELECT %s.*, %s AS distance FROM %s
		) nearby
		WHERE nearby.distance <= :radius
		ORDER BY nearby.distance ASC
		LIMIT :limit`, model.TableName, haversineExpr, model.TableName)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"lat":    lat,
		"lng":    lng,
		"radius": radiusMeters,
		"limit":  constant.NearbyResultCap,
	}

	var places []model.PlaceWithDistance

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return places, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &places, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return places, fmt.Errorf("failed to get nearby places: %w", err)
	}

	return places, nil
}

func (repo *repositoryImpl) SearchLocal(ctx context.Context, term string) ([]model.Place, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".place.SearchLocal")
	defer scope.End()

	query := fmt.Sprintf(`SELECT * FROM %s
		WHERE name ILIKE :term
			OR address ILIKE :term
			OR amenities ILIKE :term
			OR place_type ILIKE :term
		ORDER BY created_at DESC
		LIMIT :limit`, model.TableName)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"term":  "%" + term + "%",
		"limit": constant.NearbyResultCap,
	}

	var places []model.Place

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return places, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &places, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return places, fmt.Errorf("failed to search places: %w", err)
	}

	return places, nil
}
