package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"quiethours/infras/otel"
	"quiethours/infras/postgres"
	"quiethours/internal/domains/booking/model"
	placeModel "quiethours/internal/domains/place/model"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/logger"
	gRepo "quiethours/shared/repository"
)

var (
	// ErrBookingConflict signals an overlapping active booking for the
	// same place and window.
	ErrBookingConflict = errors.New("booking conflict")
	// ErrPlaceNotFound signals the booked place row is gone.
	ErrPlaceNotFound = errors.New("place not found")
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetWithPlace(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingWithPlace, error)
	GetAllWithPlace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingWithPlace, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CreateIfAvailable(ctx context.Context, booking model.Booking) error
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	joined gRepo.Repository[model.BookingWithPlace]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		joined:     gRepo.NewRepository[model.BookingWithPlace](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetWithPlace(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingWithPlace, error) {
	return repo.joined.Get(ctx, filter, columns...) //nolint:wrapcheck
}

func (repo *repositoryImpl) GetAllWithPlace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingWithPlace, error) {
	return repo.joined.GetAll(ctx, params, filter, columns...) //nolint:wrapcheck
}

// CreateIfAvailable serializes the conflict check and the insert in one
// transaction: the place row is locked FOR UPDATE so two concurrent
// bookings for the same place cannot both pass the overlap check. The
// exclusion constraint in the schema backstops the same invariant.
func (repo *repositoryImpl) CreateIfAvailable(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateIfAvailable")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("failed to rollback booking transaction")
			}
		}
	}()

	lockQuery := fmt.Sprintf("SELECT id FROM %s WHERE id = $1 FOR UPDATE", placeModel.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, lockQuery)

	var lockedID string

	err = tx.GetContext(ctx, &lockedID, lockQuery, booking.PlaceID)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrPlaceNotFound

		return err
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock place row: %w", err)
	}

	overlapQuery := fmt.Sprintf(`SELECT EXISTS(
			SELECT 1 FROM %s
			WHERE place_id = $1
				AND status IN ('%s', '%s')
				AND start_time < $2
				AND end_time > $3
		)`, model.TableName, model.StatusPending, model.StatusConfirmed)

	var conflict bool

	err = tx.GetContext(ctx, &conflict, overlapQuery, booking.PlaceID, booking.EndTime, booking.StartTime)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if conflict {
		err = ErrBookingConflict

		return err
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusion {
			err = ErrBookingConflict

			return err
		}

		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}

	return nil
}

// CompleteExpired moves confirmed bookings whose window has passed to
// completed. Returns the number of rows touched.
func (repo *repositoryImpl) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CompleteExpired")
	defer scope.End()

	query := fmt.Sprintf(`UPDATE %s
		SET status = '%s', modified_at = $1, modified_by = 'system'
		WHERE status = '%s' AND end_time < $1`,
		model.TableName, model.StatusCompleted, model.StatusConfirmed)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.ExecContext(ctx, query, now)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to complete expired bookings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
