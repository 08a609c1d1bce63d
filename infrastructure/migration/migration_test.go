package migration

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripts_Ordered(t *testing.T) {
	names, err := Scripts()
	require.NoError(t, err)

	assert.Equal(t, []string{"sql/001_promotion_snapshots.sql", "sql/002_sale_records.sql"}, names)
}

func TestApply(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(`SELECT COUNT\(1\) FROM schema_migrations`).
		WithArgs("sql/001_promotion_snapshots.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT COUNT\(1\) FROM schema_migrations`).
		WithArgs("sql/002_sale_records.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS sale_records").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations \(version\) VALUES \(\$1\)`).
		WithArgs("sql/002_sale_records.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))

	applied, err := Apply(context.Background(), db)
	require.NoError(t, err)

	assert.Equal(t, []string{"sql/002_sale_records.sql"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
