package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

const (
	saleRecordsTable  = "sale_records sr"
	saleRecordColumns = "sr.id, sr.sale_date, sr.package_name, sr.units_sold, sr.total_sales, sr.price_per_unit, sr.synced_at"
)

type SaleRecordRepository interface {
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.SaleRecordEntry, error)
	SaveOrUpdate(ctx context.Context, entry *domain.SaleRecordEntry) error
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type saleRecordRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSaleRecordRepository(db *sql.DB) SaleRecordRepository {
	return &saleRecordRepository{
		db:  db,
		now: time.Now,
	}
}

func (r *saleRecordRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.SaleRecordEntry, error) {
	query, args, err := squirrel.
		Select(saleRecordColumns).
		From(saleRecordsTable).
		Where(squirrel.GtOrEq{"sr.sale_date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"sr.sale_date": endDate.Format(time.DateOnly)}).
		OrderBy("sr.sale_date ASC", "sr.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sale record query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sale records: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.SaleRecordEntry, 0)
	for rows.Next() {
		entry := &domain.SaleRecordEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.SaleDate,
			&entry.PackageName,
			&entry.UnitsSold,
			&entry.TotalSales,
			&entry.PricePer,
			&entry.SyncedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sale record: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale records: %w", err)
	}

	return entries, nil
}

func (r *saleRecordRepository) SaveOrUpdate(ctx context.Context, entry *domain.SaleRecordEntry) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("sale_records").
		Columns("sale_date", "package_name", "units_sold", "total_sales", "price_per_unit").
		Values(
			entry.SaleDate.Format(time.DateOnly),
			entry.PackageName,
			entry.UnitsSold,
			entry.TotalSales,
			entry.PricePer,
		).
		Suffix(`
			ON CONFLICT (sale_date, package_name) DO UPDATE SET
				units_sold = EXCLUDED.units_sold,
				total_sales = EXCLUDED.total_sales,
				price_per_unit = EXCLUDED.price_per_unit,
				synced_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sale record upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("upsert sale record: %w", err)
	}

	return nil
}

func (r *saleRecordRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoffDate := r.now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("sale_records").
		Where(squirrel.Lt{"sale_date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sale record cleanup: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete old sale records: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted sale records: %w", err)
	}

	return rowsAffected, nil
}
