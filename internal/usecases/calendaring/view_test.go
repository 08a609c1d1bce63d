package calendaring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func cellFor(t *testing.T, cells []domain.CalendarCell, date string) domain.CalendarCell {
	t.Helper()
	for _, c := range cells {
		if c.Day == date {
			return c
		}
	}
	t.Fatalf("no cell for %s", date)
	return domain.CalendarCell{}
}

func TestView_Navigation(t *testing.T) {
	v := NewView(clock(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)), time.UTC)

	assert.Equal(t, Viewing, v.State())
	assert.Equal(t, "June 2024", v.Title())

	require.NoError(t, v.Prev())
	assert.Equal(t, "May 2024", v.Title())

	require.NoError(t, v.GoTo(day("2024-01-31")))
	require.NoError(t, v.Prev())
	assert.Equal(t, "December 2023", v.Title())

	require.NoError(t, v.Next())
	require.NoError(t, v.Next())
	assert.Equal(t, "February 2024", v.Title())

	require.NoError(t, v.Today())
	assert.Equal(t, "June 2024", v.Title())
}

func TestView_InitialMonthUsesLocation(t *testing.T) {
	colombo := time.FixedZone("LKT", 5*3600+30*60)

	v := NewView(clock(time.Date(2024, 6, 30, 20, 0, 0, 0, time.UTC)), colombo)

	assert.Equal(t, "July 2024", v.Title())
}

func TestView_DayDetailTransitions(t *testing.T) {
	v := NewView(clock(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)), time.UTC)

	assert.ErrorIs(t, v.Close(), ErrInvalidTransition)
	_, err := v.DayDetail()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, v.SelectDay(day("2024-06-11")))
	assert.Equal(t, DayDetailOpen, v.State())
	selected, open := v.Selected()
	assert.True(t, open)
	assert.Equal(t, day("2024-06-11"), selected)

	for name, step := range map[string]func() error{
		"next": v.Next, "prev": v.Prev, "today": v.Today,
		"select": func() error { return v.SelectDay(day("2024-06-12")) },
	} {
		assert.ErrorIs(t, step(), ErrInvalidTransition, name)
	}
	assert.Equal(t, "June 2024", v.Title(), "navigation is blocked while a day is open")

	require.NoError(t, v.Close())
	assert.Equal(t, Viewing, v.State())
	_, open = v.Selected()
	assert.False(t, open)
}

func TestView_SelectDayMustBeInGrid(t *testing.T) {
	v := NewView(clock(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)), time.UTC)

	assert.NoError(t, v.SelectDay(day("2024-05-26")))
	require.NoError(t, v.Close())
	assert.NoError(t, v.SelectDay(day("2024-07-06")))
	require.NoError(t, v.Close())

	assert.ErrorIs(t, v.SelectDay(day("2024-07-07")), ErrDayNotInGrid)
	assert.ErrorIs(t, v.SelectDay(day("2024-05-25")), ErrDayNotInGrid)
	assert.Equal(t, Viewing, v.State())
}

func TestView_Grid(t *testing.T) {
	v := NewView(clock(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)), time.UTC)
	v.SetPromotions([]*domain.Promotion{
		{ID: "1", Title: "Monsoon Deal", StartDate: "2024-06-10", EndDate: "2024-06-12", IsActive: true},
		{ID: "2", Title: "Paused", StartDate: "2024-06-10", EndDate: "2024-06-12", IsActive: false},
		{ID: "3", Title: "Broken", StartDate: "2024/06/10", EndDate: "2024-06-12", IsActive: true},
		{ID: "4", Title: "Inverted", StartDate: "2024-06-12", EndDate: "2024-06-10", IsActive: true},
	})

	cells := v.Grid()

	require.Len(t, cells, 42)
	assert.Equal(t, "2024-05-26", cells[0].Day)
	assert.Equal(t, "2024-07-06", cells[41].Day)
	assert.Equal(t, 2, v.Skipped())

	assert.Empty(t, cellFor(t, cells, "2024-06-09").Promotions)
	assert.Len(t, cellFor(t, cells, "2024-06-10").Promotions, 1)
	assert.Len(t, cellFor(t, cells, "2024-06-12").Promotions, 1)
	assert.Empty(t, cellFor(t, cells, "2024-06-13").Promotions)

	assert.False(t, cells[0].InCurrentMonth)
	assert.True(t, cellFor(t, cells, "2024-06-01").InCurrentMonth)
	assert.True(t, cellFor(t, cells, "2024-06-15").IsToday)
	assert.True(t, cellFor(t, cells, "2024-06-15").IsWeekend)
	assert.False(t, cellFor(t, cells, "2024-06-14").IsToday)
}

func TestView_GridOverflow(t *testing.T) {
	v := NewView(clock(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)), time.UTC)

	var promotions []*domain.Promotion
	for i := 1; i <= 5; i++ {
		promotions = append(promotions, &domain.Promotion{
			ID: domain.PromotionID(fmt.Sprint(i)), StartDate: "2024-06-11", EndDate: "2024-06-11", IsActive: true,
		})
	}
	v.SetPromotions(promotions)

	cell := cellFor(t, v.Grid(), "2024-06-11")

	assert.Len(t, cell.Promotions, 5)
	require.Len(t, cell.Visible, domain.MaxVisiblePromotions)
	assert.Equal(t, 2, cell.Overflow)
	assert.Equal(t, domain.PromotionID("1"), cell.Visible[0].ID)
	assert.Equal(t, domain.PromotionID("3"), cell.Visible[2].ID)
}

func TestView_GridIsIdempotent(t *testing.T) {
	v := NewView(clock(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)), time.UTC)
	v.SetPromotions([]*domain.Promotion{
		{ID: "1", StartDate: "2024-06-10", EndDate: "2024-06-12", IsActive: true},
	})

	assert.Equal(t, v.Grid(), v.Grid())
}

func TestView_DayDetail(t *testing.T) {
	v := NewView(clock(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)), time.UTC)
	v.SetPromotions([]*domain.Promotion{
		{ID: "1", Title: "Monsoon Deal", StartDate: "2024-06-10", EndDate: "2024-06-12", IsActive: true},
		{ID: "2", Title: "Year End", StartDate: "2024-06-11", EndDate: "2024-06-11", IsActive: true},
		{ID: "3", Title: "Later", StartDate: "2024-06-20", EndDate: "2024-06-22", IsActive: true},
	})
	require.NoError(t, v.SelectDay(day("2024-06-11")))

	detail, err := v.DayDetail()

	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", detail.Date)
	assert.Equal(t, "Tuesday, June 11, 2024", detail.Title)
	require.Len(t, detail.Promotions, 2)
	assert.Equal(t, "Jun 10 - Jun 12, 2024", detail.Promotions[0].Period)
	assert.Equal(t, 3, detail.Promotions[0].DurationDays)
	assert.Equal(t, "Jun 11, 2024", detail.Promotions[1].Period)
	assert.Equal(t, 1, detail.Promotions[1].DurationDays)
}
