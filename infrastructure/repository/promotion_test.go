package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

func TestPromotionRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	syncedAt := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "payload", "synced_at"}).
		AddRow("7", []byte(`{"id":7,"title":"Monsoon Deal","startDate":"2024-06-10","endDate":"2024-06-12","isActive":true,"color":"green"}`), syncedAt).
		AddRow("9", []byte(`{"id":"9","title":"Yala Flash","startDate":"2024-06-11","endDate":"2024-06-11","isActive":true,"color":"teal"}`), syncedAt)

	mock.ExpectQuery(`SELECT ps.id, ps.payload, ps.synced_at FROM promotion_snapshots ps WHERE ps.is_active = \$1 ORDER BY ps.start_date ASC, ps.id ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	repo := NewPromotionRepository(db)
	got, err := repo.List(context.Background(), true)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, domain.PromotionID("7"), got[0].ID)
	assert.Equal(t, "Monsoon Deal", got[0].Title)
	assert.Equal(t, domain.ColorGreen, got[0].Color)
	assert.Equal(t, domain.ColorBlue, got[1].Color, "unknown colors fall back to blue")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM promotion_snapshots ps WHERE ps.id = \$1`).
		WithArgs("404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "payload", "synced_at"}))

	got, err := NewPromotionRepository(db).GetByID(context.Background(), "404")

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionRepository_ReplaceAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM promotion_snapshots").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO promotion_snapshots .* ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs("1", "Monsoon Deal", "2024-06-10", "2024-06-12", true, "blue", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = NewPromotionRepository(db).ReplaceAll(context.Background(), []*domain.Promotion{
		{ID: "1", Title: "Monsoon Deal", StartDate: "2024-06-10", EndDate: "2024-06-12", IsActive: true, Color: domain.ColorBlue},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionRepository_ReplaceAll_RollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM promotion_snapshots").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO promotion_snapshots").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewPromotionRepository(db).ReplaceAll(context.Background(), []*domain.Promotion{
		{ID: "1", Title: "A", StartDate: "2024-06-10", EndDate: "2024-06-12"},
	})

	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromotionRepository_SaveOrUpdate_RequiresID(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewPromotionRepository(db).SaveOrUpdate(context.Background(), &domain.Promotion{Title: "no id"})
	assert.Error(t, err)
}

func TestPromotionRepository_LastSyncedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT MAX\(ps.synced_at\) FROM promotion_snapshots ps`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	got, err := NewPromotionRepository(db).LastSyncedAt(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
