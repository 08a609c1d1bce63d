package calendaring

import (
	"errors"
	"fmt"
	"time"

	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

const (
	monthTitleLayout = "January 2006"
	dayTitleLayout   = "Monday, January 2, 2006"
)

type State int

const (
	Viewing State = iota
	DayDetailOpen
)

func (s State) String() string {
	if s == DayDetailOpen {
		return "day_detail_open"
	}
	return "viewing"
}

var (
	ErrInvalidTransition = errors.New("invalid calendar transition")
	ErrDayNotInGrid      = errors.New("day is not shown in the current month grid")
)

// View is the navigable month calendar of one session. It moves between
// Viewing(month) and DayDetailOpen(month, day); everything it renders is
// derived from the month and the promotion list on each call.
type View struct {
	state    State
	month    time.Time
	selected time.Time
	today    func() time.Time

	promotions []scheduled
	skipped    int
}

// scheduled is an active promotion with its dates parsed once.
type scheduled struct {
	promotion *domain.Promotion
	start     time.Time
	end       time.Time
}

// NewView opens on the month containing today in loc.
func NewView(now func() time.Time, loc *time.Location) *View {
	if loc == nil {
		loc = time.Local
	}
	today := func() time.Time { return now().In(loc) }

	return &View{
		state: Viewing,
		month: monthOf(today()),
		today: today,
	}
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (v *View) State() State {
	return v.state
}

func (v *View) Month() time.Time {
	return v.month
}

// Selected returns the open day, if any.
func (v *View) Selected() (time.Time, bool) {
	return v.selected, v.state == DayDetailOpen
}

// Skipped is how many active promotions were left off the grid because their
// dates did not parse or their range is inverted.
func (v *View) Skipped() int {
	return v.skipped
}

// SetPromotions replaces the promotion list. Only active promotions with a
// well-formed range are kept, in input order.
func (v *View) SetPromotions(promotions []*domain.Promotion) {
	v.promotions = v.promotions[:0]
	v.skipped = 0

	for _, p := range promotions {
		if p == nil || !p.IsActive {
			continue
		}
		start, err := daterange.ParseDate(p.StartDate)
		if err != nil {
			v.skipped++
			continue
		}
		end, err := daterange.ParseDate(p.EndDate)
		if err != nil || daterange.CompareDays(start, end) > 0 {
			v.skipped++
			continue
		}
		v.promotions = append(v.promotions, scheduled{promotion: p, start: start, end: end})
	}
}

func (v *View) requireViewing(action string) error {
	if v.state != Viewing {
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, v.state)
	}
	return nil
}

func (v *View) Next() error {
	if err := v.requireViewing("next"); err != nil {
		return err
	}
	v.month = daterange.AddMonths(v.month, 1)
	return nil
}

func (v *View) Prev() error {
	if err := v.requireViewing("prev"); err != nil {
		return err
	}
	v.month = daterange.AddMonths(v.month, -1)
	return nil
}

func (v *View) Today() error {
	if err := v.requireViewing("today"); err != nil {
		return err
	}
	v.month = monthOf(v.today())
	return nil
}

// GoTo jumps to the month containing t.
func (v *View) GoTo(t time.Time) error {
	if err := v.requireViewing("go to month"); err != nil {
		return err
	}
	v.month = monthOf(t)
	return nil
}

// SelectDay opens the detail of a day shown in the current grid, including
// the leading and trailing days of the neighbouring months.
func (v *View) SelectDay(day time.Time) error {
	if err := v.requireViewing("select day"); err != nil {
		return err
	}

	grid := daterange.MonthGrid(v.month)
	if daterange.CompareDays(day, grid[0]) < 0 || daterange.CompareDays(day, grid[len(grid)-1]) > 0 {
		return fmt.Errorf("%w: %s", ErrDayNotInGrid, daterange.FormatISO(day))
	}

	v.selected = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	v.state = DayDetailOpen
	return nil
}

func (v *View) Close() error {
	if v.state != DayDetailOpen {
		return fmt.Errorf("%w: close while %s", ErrInvalidTransition, v.state)
	}
	v.selected = time.Time{}
	v.state = Viewing
	return nil
}

// Grid renders the 42 cells of the current month.
func (v *View) Grid() []domain.CalendarCell {
	today := v.today()
	days := daterange.MonthGrid(v.month)

	cells := make([]domain.CalendarCell, 0, len(days))
	for _, day := range days {
		onDay := v.promotionsOn(day)

		visible := onDay
		if len(visible) > domain.MaxVisiblePromotions {
			visible = visible[:domain.MaxVisiblePromotions]
		}

		cells = append(cells, domain.CalendarCell{
			Date:           day,
			Day:            daterange.FormatISO(day),
			InCurrentMonth: day.Month() == v.month.Month(),
			IsToday:        daterange.SameDay(day, today),
			IsWeekend:      daterange.IsWeekend(day),
			Promotions:     onDay,
			Visible:        visible,
			Overflow:       len(onDay) - len(visible),
		})
	}

	return cells
}

func (v *View) promotionsOn(day time.Time) []*domain.Promotion {
	onDay := make([]*domain.Promotion, 0)
	for _, s := range v.promotions {
		if daterange.IsWithinRange(day, s.start, s.end) {
			onDay = append(onDay, s.promotion)
		}
	}
	return onDay
}

// DayDetail lists every promotion running on the open day.
func (v *View) DayDetail() (*domain.CalendarDayDetail, error) {
	if v.state != DayDetailOpen {
		return nil, fmt.Errorf("%w: no day is open", ErrInvalidTransition)
	}

	detail := &domain.CalendarDayDetail{
		Date:       daterange.FormatISO(v.selected),
		Title:      v.selected.Format(dayTitleLayout),
		Promotions: make([]domain.CalendarPromotion, 0),
	}

	for _, s := range v.promotions {
		if !daterange.IsWithinRange(v.selected, s.start, s.end) {
			continue
		}
		days, _ := daterange.DurationInDays(s.start, s.end)
		detail.Promotions = append(detail.Promotions, domain.CalendarPromotion{
			Promotion:    s.promotion,
			Period:       daterange.FormatRange(s.start, s.end),
			DurationDays: days,
		})
	}

	return detail, nil
}

// Title is the heading of the current month, e.g. "June 2024".
func (v *View) Title() string {
	return v.month.Format(monthTitleLayout)
}
