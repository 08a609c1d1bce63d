// Package repository holds the Postgres snapshot cache of upstream data.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/database/postgres"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	promotionSnapshotsTable = "promotion_snapshots ps"
	promotionColumns        = "ps.id, ps.payload, ps.synced_at"
)

type PromotionRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Promotion, error)
	GetByID(ctx context.Context, id domain.PromotionID) (*domain.Promotion, error)
	SaveOrUpdate(ctx context.Context, promotion *domain.Promotion) error
	Delete(ctx context.Context, id domain.PromotionID) error
	ReplaceAll(ctx context.Context, promotions []*domain.Promotion) error
	LastSyncedAt(ctx context.Context) (*time.Time, error)
}

type promotionRepository struct {
	db *sql.DB
}

func NewPromotionRepository(db *sql.DB) PromotionRepository {
	return &promotionRepository{
		db: db,
	}
}

func (r *promotionRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Promotion, error) {
	builder := squirrel.
		Select(promotionColumns).
		From(promotionSnapshotsTable).
		OrderBy("ps.start_date ASC", "ps.id ASC").
		PlaceholderFormat(squirrel.Dollar)
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"ps.is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build promotion list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	promotions := make([]*domain.Promotion, 0)
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promotions: %w", err)
	}

	return promotions, nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id domain.PromotionID) (*domain.Promotion, error) {
	query, args, err := squirrel.
		Select(promotionColumns).
		From(promotionSnapshotsTable).
		Where(squirrel.Eq{"ps.id": id.String()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build promotion lookup: %w", err)
	}

	p, err := scanPromotion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *promotionRepository) SaveOrUpdate(ctx context.Context, promotion *domain.Promotion) error {
	return savePromotion(ctx, r.db, promotion)
}

func (r *promotionRepository) Delete(ctx context.Context, id domain.PromotionID) error {
	query, args, err := squirrel.
		Delete("promotion_snapshots").
		Where(squirrel.Eq{"id": id.String()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build promotion delete: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete promotion %s: %w", id, err)
	}
	return nil
}

// ReplaceAll swaps the whole snapshot in one transaction.
func (r *promotionRepository) ReplaceAll(ctx context.Context, promotions []*domain.Promotion) error {
	return postgres.RunInTransaction(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM promotion_snapshots"); err != nil {
			return fmt.Errorf("clear promotion snapshot: %w", err)
		}
		for _, p := range promotions {
			if err := savePromotion(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *promotionRepository) LastSyncedAt(ctx context.Context) (*time.Time, error) {
	query, args, err := squirrel.
		Select("MAX(ps.synced_at)").
		From(promotionSnapshotsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build last sync query: %w", err)
	}

	var syncedAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&syncedAt); err != nil {
		return nil, fmt.Errorf("read last sync: %w", err)
	}
	if !syncedAt.Valid {
		return nil, nil
	}
	return &syncedAt.Time, nil
}

func savePromotion(ctx context.Context, db postgres.Queryer, p *domain.Promotion) error {
	if p == nil || p.ID == "" {
		return errors.New("promotion without id cannot be cached")
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serialize promotion %s: %w", p.ID, err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("promotion_snapshots").
		Columns("id", "title", "start_date", "end_date", "is_active", "color", "payload").
		Values(p.ID.String(), p.Title, p.StartDate, p.EndDate, p.IsActive, string(p.Color), payload).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				is_active = EXCLUDED.is_active,
				color = EXCLUDED.color,
				payload = EXCLUDED.payload,
				synced_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build promotion upsert: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("upsert promotion %s: %w", p.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var (
		id       string
		payload  []byte
		syncedAt time.Time
	)

	if err := row.Scan(&id, &payload, &syncedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan promotion: %w", err)
	}

	p := &domain.Promotion{}
	if err := json.Unmarshal(payload, p); err != nil {
		return nil, fmt.Errorf("decode promotion %s payload: %w", id, err)
	}
	p.ID = domain.PromotionID(id)

	return p, nil
}
