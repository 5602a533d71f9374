package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockDonationRepository(t *testing.T) (*GormDonationRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormDonationRepository(gormDB), mock, mockDB
}

const testAddressJSON = `{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001"}`

func TestGormDonationRepository_FindByID(t *testing.T) {
	t.Run("finds existing donation", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		donationID := uuid.New()
		donorID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "version", "title", "description", "quantity_amount", "quantity_unit",
			"expiry_date", "pickup_address", "city", "status", "donor_id", "image_keys", "dietary_info",
		}).AddRow(
			donationID, 1, "Wedding buffet leftovers", "Rice and curry for 40",
			decimal.NewFromInt(40), "plates", time.Now().Add(6*time.Hour),
			testAddressJSON, "Bengaluru", "available", donorID, `["donations/a.jpg"]`, `["vegetarian"]`,
		)

		mock.ExpectQuery(`SELECT \* FROM "food_donations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(donationID, 1).
			WillReturnRows(rows)

		d, err := repo.FindByID(context.Background(), donationID)

		require.NoError(t, err)
		assert.Equal(t, donationID, d.ID)
		assert.Equal(t, "Wedding buffet leftovers", d.Title)
		assert.Equal(t, donation.StatusAvailable, d.Status)
		assert.Equal(t, "Bengaluru", d.PickupAddress.City())
		assert.Equal(t, []string{"donations/a.jpg"}, d.ImageKeys)
		assert.Equal(t, []string{"vegetarian"}, d.DietaryInfo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing donation", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		donationID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "food_donations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(donationID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		d, err := repo.FindByID(context.Background(), donationID)

		assert.Nil(t, d)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDonationRepository_UpdateStatusIf(t *testing.T) {
	t.Run("wins when the row is still in the expected status", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		donationID := uuid.New()

		mock.ExpectExec(`UPDATE "food_donations" SET .+ WHERE id = \$3 AND status = \$4`).
			WithArgs("reserved", sqlmock.AnyArg(), donationID, "available").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatusIf(context.Background(), donationID, donation.StatusAvailable, donation.StatusReserved)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrConflict when the row moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		donationID := uuid.New()

		mock.ExpectExec(`UPDATE "food_donations" SET .+ WHERE id = \$3 AND status = \$4`).
			WithArgs("reserved", sqlmock.AnyArg(), donationID, "available").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "food_donations" WHERE id = \$1`).
			WithArgs(donationID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.UpdateStatusIf(context.Background(), donationID, donation.StatusAvailable, donation.StatusReserved)

		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when the row does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		donationID := uuid.New()

		mock.ExpectExec(`UPDATE "food_donations" SET .+ WHERE id = \$3 AND status = \$4`).
			WithArgs("reserved", sqlmock.AnyArg(), donationID, "available").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "food_donations" WHERE id = \$1`).
			WithArgs(donationID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.UpdateStatusIf(context.Background(), donationID, donation.StatusAvailable, donation.StatusReserved)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDonationRepository_Delete(t *testing.T) {
	t.Run("deletes existing donation", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		donationID := uuid.New()

		mock.ExpectExec(`DELETE FROM "food_donations" WHERE id = \$1`).
			WithArgs(donationID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), donationID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		donationID := uuid.New()

		mock.ExpectExec(`DELETE FROM "food_donations" WHERE id = \$1`).
			WithArgs(donationID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), donationID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDonationRepository_FindAll_FiltersByStatus(t *testing.T) {
	repo, mock, mockDB := newMockDonationRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "status", "city"}).
		AddRow(uuid.New(), "Bakery surplus", "available", "Bengaluru")

	mock.ExpectQuery(`SELECT \* FROM "food_donations" WHERE status = \$1 ORDER BY created_at DESC LIMIT .*`).
		WithArgs("available", 20).
		WillReturnRows(rows)

	filter := shared.DefaultFilter()
	filter.Filters["status"] = "available"

	donations, err := repo.FindAll(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, "Bakery surplus", donations[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDonationRepository_SaveWithLock(t *testing.T) {
	newVersionedDonation := func(t *testing.T) *donation.FoodDonation {
		t.Helper()
		d, err := donation.NewFoodDonation(
			uuid.New(),
			"Bakery surplus",
			"Two trays of bread and buns",
			valueobject.MustNewQuantity(decimal.NewFromInt(5), valueobject.UnitKg),
			time.Now().Add(8*time.Hour),
			valueobject.MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001"),
		)
		require.NoError(t, err)
		return d
	}

	t.Run("guards on the loaded version and writes version+1", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		d := newVersionedDonation(t)
		require.Equal(t, 1, d.Version)

		mock.ExpectExec(`UPDATE "food_donations" SET .+ WHERE id = \$15 AND version = \$16`).
			WithArgs(
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), 2, // version written
				d.ID, 1, // version guarded
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), d)

		require.NoError(t, err)
		assert.Equal(t, 2, d.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrConcurrencyConflict when the version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockDonationRepository(t)
		defer mockDB.Close()

		d := newVersionedDonation(t)

		mock.ExpectExec(`UPDATE "food_donations" SET .+ WHERE id = \$15 AND version = \$16`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), d)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, d.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
