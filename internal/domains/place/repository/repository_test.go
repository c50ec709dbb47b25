package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"quiethours/infras/otel/mocks"
	"quiethours/infras/postgres"
	"quiethours/internal/domains/place/repository"
	"quiethours/shared/geo"
)

func newRepository(t *testing.T) (repository.Place, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.New(conn, mocks.NewOtel()), mock
}

func TestPlaceRepository_Nearby(t *testing.T) {
	t.Run("orders by distance and caps results", func(t *testing.T) {
		repo, mock := newRepository(t)

		// Row distances come from the same haversine formula the SQL
		// expression computes, so the fixtures stay honest.
		queryLat, queryLng := -6.2, 106.8
		nearDistance := geo.Distance(queryLat, queryLng, -6.201, 106.801)
		farDistance := geo.Distance(queryLat, queryLng, -6.21, 106.81)

		rows := sqlmock.NewRows([]string{"id", "name", "address", "latitude", "longitude", "rating", "distance"}).
			AddRow("place-1", "Reading Room", "1 Quiet St", -6.201, 106.801, 4.5, nearDistance).
			AddRow("place-2", "Study Hall", "2 Calm Ave", -6.21, 106.81, 4.0, farDistance)

		prep := mock.ExpectPrepare(`SELECT \* FROM \(`)
		prep.ExpectQuery().WillReturnRows(rows)

		places, err := repo.Nearby(context.Background(), queryLat, queryLng, 5000)

		assert.NoError(t, err)
		assert.Len(t, places, 2)
		assert.Equal(t, "Reading Room", places[0].Name)
		assert.InDelta(t, geo.Distance(queryLat, queryLng, places[0].Latitude, places[0].Longitude), places[0].Distance, 0.5)
		assert.Less(t, places[0].Distance, places[1].Distance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates query failure", func(t *testing.T) {
		repo, mock := newRepository(t)

		prep := mock.ExpectPrepare(`SELECT \* FROM \(`)
		prep.ExpectQuery().WillReturnError(assert.AnError)

		_, err := repo.Nearby(context.Background(), -6.2, 106.8, 5000)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPlaceRepository_SearchLocal(t *testing.T) {
	t.Run("matches across text columns", func(t *testing.T) {
		repo, mock := newRepository(t)

		rows := sqlmock.NewRows([]string{"id", "name", "address", "latitude", "longitude", "rating"}).
			AddRow("place-1", "Quiet Library", "1 Quiet St", -6.2, 106.8, 4.5)

		prep := mock.ExpectPrepare(`SELECT \* FROM places\s+WHERE name ILIKE`)
		prep.ExpectQuery().WillReturnRows(rows)

		places, err := repo.SearchLocal(context.Background(), "library")

		assert.NoError(t, err)
		assert.Len(t, places, 1)
		assert.Equal(t, "Quiet Library", places[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		repo, mock := newRepository(t)

		prep := mock.ExpectPrepare(`SELECT \* FROM places\s+WHERE name ILIKE`)
		prep.ExpectQuery().WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "latitude", "longitude", "rating"}))

		places, err := repo.SearchLocal(context.Background(), "nothing")

		assert.NoError(t, err)
		assert.Empty(t, places)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
