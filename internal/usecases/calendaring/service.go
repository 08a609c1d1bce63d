// Package calendaring renders the public promotion calendar.
package calendaring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vinodrajapaksha/ttms-api/internal/config"
	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
	"github.com/vinodrajapaksha/ttms-api/internal/usecases/promoting"
	"github.com/vinodrajapaksha/ttms-api/pkg/log"
	"github.com/vinodrajapaksha/ttms-api/pkg/utils"
)

var (
	ErrInvalidMonth = errors.New("month must be YYYY-MM")
	ErrInvalidNav   = errors.New("nav must be prev, next or today")
)

var weekDays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MonthRequest mirrors the calendar query string. Nav is applied after Month;
// Date, when set, opens that day's detail.
type MonthRequest struct {
	Month string
	Nav   string
	Date  string
}

type Calendarer interface {
	Month(ctx context.Context, req MonthRequest) (*domain.CalendarMonth, error)
	Day(ctx context.Context, date string) (*domain.CalendarDayDetail, error)
}

type Service struct {
	promoter promoting.Promoter
	loc      *time.Location
	now      func() time.Time
}

func NewService(cfg *config.Config, promoter promoting.Promoter) *Service {
	loc, err := cfg.Location()
	if err != nil {
		loc = time.Local
	}

	return &Service{
		promoter: promoter,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Month(ctx context.Context, req MonthRequest) (*domain.CalendarMonth, error) {
	view := NewView(s.now, s.loc)

	month, err := utils.ParseMonth(strings.TrimSpace(req.Month), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, req.Month)
	}
	if month != nil {
		if err := view.GoTo(*month); err != nil {
			return nil, err
		}
	}

	if err := navigate(view, req.Nav); err != nil {
		return nil, err
	}

	if req.Date != "" {
		day, err := daterange.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		if err := view.SelectDay(day); err != nil {
			return nil, err
		}
	}

	promotions, err := s.promoter.List(ctx)
	if err != nil {
		return nil, err
	}
	view.SetPromotions(promotions)

	if view.Skipped() > 0 {
		log.ForContext(ctx).WithField("skipped", view.Skipped()).Warn("calendar: promotions with unusable dates left off the grid")
	}

	result := &domain.CalendarMonth{
		Month:    utils.FormatMonth(view.Month()),
		Title:    view.Title(),
		WeekDays: weekDays,
		Cells:    view.Grid(),
		Summary:  *promoting.Summarize(promotions),
	}

	if _, open := view.Selected(); open {
		if result.SelectedDay, err = view.DayDetail(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func navigate(view *View, nav string) error {
	switch strings.ToLower(strings.TrimSpace(nav)) {
	case "":
		return nil
	case "prev":
		return view.Prev()
	case "next":
		return view.Next()
	case "today":
		return view.Today()
	}
	return fmt.Errorf("%w: %q", ErrInvalidNav, nav)
}

// Day opens the detail of a single date in the grid of its own month.
func (s *Service) Day(ctx context.Context, date string) (*domain.CalendarDayDetail, error) {
	day, err := daterange.ParseDate(date)
	if err != nil {
		return nil, err
	}

	view := NewView(s.now, s.loc)
	if err := view.GoTo(day); err != nil {
		return nil, err
	}
	if err := view.SelectDay(day); err != nil {
		return nil, err
	}

	promotions, err := s.promoter.List(ctx)
	if err != nil {
		return nil, err
	}
	view.SetPromotions(promotions)

	return view.DayDetail()
}
