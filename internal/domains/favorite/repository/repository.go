package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"quiethours/infras/otel"
	"quiethours/infras/postgres"
	"quiethours/internal/domains/favorite/model"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	gRepo "quiethours/shared/repository"
)

// ErrDuplicateFavorite signals the (user, place) pair already exists. The
// unique constraint catches the race the Exist pre-check leaves open.
var ErrDuplicateFavorite = errors.New("favorite already exists")

type Favorite interface {
	Insert(ctx context.Context, model model.Favorite) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetAllWithPlace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.FavoriteWithPlace, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Favorite]
	joined gRepo.Repository[model.FavoriteWithPlace]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Favorite {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Favorite](model.EntityName, model.TableName, model.FieldID, db, otel),
		joined:     gRepo.NewRepository[model.FavoriteWithPlace](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, favorite model.Favorite) error {
	err := repo.Repository.Insert(ctx, favorite)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return ErrDuplicateFavorite
	}

	return err //nolint:wrapcheck
}

func (repo *repositoryImpl) GetAllWithPlace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.FavoriteWithPlace, error) {
	return repo.joined.GetAll(ctx, params, filter, columns...) //nolint:wrapcheck
}
