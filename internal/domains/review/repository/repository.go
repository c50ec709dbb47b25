package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"quiethours/infras/otel"
	"quiethours/infras/postgres"
	"quiethours/internal/domains/review/model"
	userModel "quiethours/internal/domains/user/model"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/logger"
	gRepo "quiethours/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetByPlace(ctx context.Context, placeID string) ([]model.ReviewWithUser, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetByPlace(ctx context.Context, placeID string) ([]model.ReviewWithUser, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".review.GetByPlace")
	defer scope.End()

	query := fmt.Sprintf(`SELECT %s.*,
			%s.first_name AS reviewer_first_name,
			%s.last_name AS reviewer_last_name
		FROM %s
		JOIN %s ON %s.id = %s.user_id
		WHERE %s.place_id = :place_id
		ORDER BY %s.created_at DESC`,
		model.TableName,
		userModel.TableName, userModel.TableName,
		model.TableName,
		userModel.TableName, userModel.TableName, model.TableName,
		model.TableName, model.TableName)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{"place_id": placeID}

	var reviews []model.ReviewWithUser

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return reviews, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &reviews, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return reviews, fmt.Errorf("failed to get place reviews: %w", err)
	}

	return reviews, nil
}
