package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/foodbridge/backend/internal/domain/volunteer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockVolunteerRepository(t *testing.T) (*GormVolunteerRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormVolunteerRepository(gormDB), mock, mockDB
}

func newVersionedVolunteer(t *testing.T) *volunteer.Volunteer {
	t.Helper()
	v, err := volunteer.NewVolunteer(
		uuid.New(),
		"9876543210",
		"123456789012",
		volunteer.AvailabilityWeekends,
		volunteer.VehicleBike,
		valueobject.MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001"),
	)
	require.NoError(t, err)
	return v
}

func TestGormVolunteerRepository_SaveWithLock(t *testing.T) {
	t.Run("guards on the loaded version and writes version+1", func(t *testing.T) {
		repo, mock, mockDB := newMockVolunteerRepository(t)
		defer mockDB.Close()

		v := newVersionedVolunteer(t)
		require.Equal(t, 1, v.Version)

		mock.ExpectExec(`UPDATE "volunteers" SET .+ WHERE id = \$13 AND version = \$14`).
			WithArgs(
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				2,       // version written
				v.ID, 1, // version guarded
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), v)

		require.NoError(t, err)
		assert.Equal(t, 2, v.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrConcurrencyConflict when the version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockVolunteerRepository(t)
		defer mockDB.Close()

		v := newVersionedVolunteer(t)

		mock.ExpectExec(`UPDATE "volunteers" SET .+ WHERE id = \$13 AND version = \$14`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), v)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, v.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
