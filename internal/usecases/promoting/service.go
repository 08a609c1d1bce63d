// Package promoting manages tour promotions. The upstream backend owns them;
// this package validates staff edits, forwards them and keeps the optional
// snapshot cache consistent.
package promoting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vinodrajapaksha/ttms-api/infrastructure/integrator/backend"
	"github.com/vinodrajapaksha/ttms-api/infrastructure/repository"
	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/pkg/log"
)

// SummaryUpcoming is how many promotions the calendar summary card lists.
const SummaryUpcoming = 4

var ErrCacheDisabled = errors.New("promotion snapshot cache is disabled")

type Promoter interface {
	List(ctx context.Context) ([]*domain.Promotion, error)
	ListActive(ctx context.Context) ([]*domain.Promotion, error)
	Get(ctx context.Context, id domain.PromotionID) (*domain.Promotion, error)
	Create(ctx context.Context, input domain.PromotionInput) (*domain.Promotion, error)
	Update(ctx context.Context, id domain.PromotionID, input domain.PromotionInput) (*domain.Promotion, error)
	ToggleActive(ctx context.Context, id domain.PromotionID) (*domain.Promotion, error)
	Delete(ctx context.Context, id domain.PromotionID) error
	Summary(ctx context.Context) (*domain.PromotionSummary, error)
	Sync(ctx context.Context) (int, error)
}

type Service struct {
	client   backend.Client
	repo     repository.PromotionRepository
	useCache bool
	now      func() time.Time
	loc      *time.Location
}

func NewService(cfg *config.Config, client backend.Client) *Service {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}

	return &Service{
		client: client,
		now:    time.Now,
		loc:    loc,
	}
}

// WithCache serves reads from the promotion snapshot and keeps it in step
// with every mutation.
func (s *Service) WithCache(repo repository.PromotionRepository) *Service {
	s.repo = repo
	s.useCache = repo != nil
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) List(ctx context.Context) ([]*domain.Promotion, error) {
	if s.useCache {
		if promotions, ok := s.fromSnapshot(ctx, false); ok {
			return promotions, nil
		}
	}
	return s.client.ListPromotions(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]*domain.Promotion, error) {
	if s.useCache {
		if promotions, ok := s.fromSnapshot(ctx, true); ok {
			return promotions, nil
		}
	}
	return s.client.ListActivePromotions(ctx)
}

// fromSnapshot reports ok=false when the snapshot is empty or unreadable, so
// the caller falls through to the backend.
func (s *Service) fromSnapshot(ctx context.Context, activeOnly bool) ([]*domain.Promotion, bool) {
	promotions, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("promotions: snapshot unavailable, reading from backend")
		return nil, false
	}
	return promotions, len(promotions) > 0
}

func (s *Service) Get(ctx context.Context, id domain.PromotionID) (*domain.Promotion, error) {
	if id == "" {
		return nil, ErrPromotionIDNeeded
	}

	if s.useCache {
		cached, err := s.repo.GetByID(ctx, id)
		if err != nil {
			log.ForContext(ctx).WithError(err).WithField("promotion_id", id.String()).Warn("promotions: snapshot lookup failed")
		}
		if cached != nil {
			return cached, nil
		}
	}

	promotion, err := s.client.GetPromotion(ctx, id)
	if backend.IsNotFound(err) || (err == nil && promotion == nil) {
		return nil, fmt.Errorf("%w: %s", ErrPromotionNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return promotion, nil
}

func (s *Service) Create(ctx context.Context, input domain.PromotionInput) (*domain.Promotion, error) {
	today := s.today()
	promotion, err := buildPromotion(input, &today)
	if err != nil {
		return nil, err
	}

	created, err := s.client.CreatePromotion(ctx, promotion)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = promotion
	}

	s.remember(ctx, created)
	log.ForContext(ctx).WithFields(log.Fields{
		"promotion_id": created.ID.String(),
		"start_date":   created.StartDate,
		"end_date":     created.EndDate,
	}).Info("promotions: created")

	return created, nil
}

func (s *Service) Update(ctx context.Context, id domain.PromotionID, input domain.PromotionInput) (*domain.Promotion, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IsActive == nil {
		input.IsActive = &existing.IsActive
	}
	promotion, err := buildPromotion(input, nil)
	if err != nil {
		return nil, err
	}
	promotion.ID = id

	return s.save(ctx, promotion, "promotions: updated")
}

func (s *Service) ToggleActive(ctx context.Context, id domain.PromotionID) (*domain.Promotion, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	toggled := *existing
	toggled.ID = id
	toggled.IsActive = !existing.IsActive

	return s.save(ctx, &toggled, "promotions: active flag toggled")
}

func (s *Service) save(ctx context.Context, promotion *domain.Promotion, msg string) (*domain.Promotion, error) {
	updated, err := s.client.UpdatePromotion(ctx, promotion.ID, promotion)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		updated = promotion
	}
	if updated.ID == "" {
		updated.ID = promotion.ID
	}

	s.remember(ctx, updated)
	log.ForContext(ctx).WithFields(log.Fields{
		"promotion_id": updated.ID.String(),
		"is_active":    updated.IsActive,
	}).Info(msg)

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id domain.PromotionID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.client.DeletePromotion(ctx, id); err != nil {
		return err
	}

	if s.useCache {
		if err := s.repo.Delete(ctx, id); err != nil {
			log.ForContext(ctx).WithError(err).WithField("promotion_id", id.String()).Warn("promotions: could not evict deleted promotion from snapshot")
		}
	}

	log.ForContext(ctx).WithField("promotion_id", id.String()).Info("promotions: deleted")
	return nil
}

// remember writes a mutation through to the snapshot. A failure only makes
// the snapshot stale until the next sync.
func (s *Service) remember(ctx context.Context, promotion *domain.Promotion) {
	if !s.useCache || promotion.ID == "" {
		return
	}
	if err := s.repo.SaveOrUpdate(ctx, promotion); err != nil {
		log.ForContext(ctx).WithError(err).WithField("promotion_id", promotion.ID.String()).Warn("promotions: snapshot write-through failed")
	}
}

// Summary counts the active promotions and lists the first few in the order
// the backend returned them.
func (s *Service) Summary(ctx context.Context) (*domain.PromotionSummary, error) {
	promotions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(promotions), nil
}

func Summarize(promotions []*domain.Promotion) *domain.PromotionSummary {
	active := make([]*domain.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if p != nil && p.IsActive {
			active = append(active, p)
		}
	}

	upcoming := active
	if len(upcoming) > SummaryUpcoming {
		upcoming = upcoming[:SummaryUpcoming]
	}

	return &domain.PromotionSummary{
		ActiveCount: len(active),
		Upcoming:    upcoming,
	}
}

// Sync replaces the snapshot with the backend's current promotion list.
func (s *Service) Sync(ctx context.Context) (int, error) {
	if !s.useCache {
		return 0, ErrCacheDisabled
	}

	promotions, err := s.client.ListPromotions(ctx)
	if err != nil {
		return 0, err
	}

	valid := make([]*domain.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if p != nil && p.ID != "" {
			valid = append(valid, p)
		}
	}

	if err := s.repo.ReplaceAll(ctx, valid); err != nil {
		return 0, fmt.Errorf("replace promotion snapshot: %w", err)
	}
	return len(valid), nil
}
