package domain

import "time"

// MaxVisiblePromotions is how many promotions a calendar cell lists before
// collapsing the rest into an overflow marker.
const MaxVisiblePromotions = 3

// CalendarCell is one day of a month grid. It is derived on every render.
type CalendarCell struct {
	Date           time.Time    `json:"-"`
	Day            string       `json:"date"`
	InCurrentMonth bool         `json:"in_current_month"`
	IsToday        bool         `json:"is_today"`
	IsWeekend      bool         `json:"is_weekend"`
	Promotions     []*Promotion `json:"-"`
	Visible        []*Promotion `json:"promotions"`
	Overflow       int          `json:"overflow,omitempty"`
}

// CalendarMonth is the payload served for one month of the public calendar.
type CalendarMonth struct {
	Month       string             `json:"month"`
	Title       string             `json:"title"`
	WeekDays    []string           `json:"week_days"`
	Cells       []CalendarCell     `json:"cells"`
	Summary     PromotionSummary   `json:"summary"`
	SelectedDay *CalendarDayDetail `json:"selected_day,omitempty"`
}

// CalendarPromotion is a promotion enriched for the day-detail panel.
type CalendarPromotion struct {
	*Promotion
	Period       string `json:"period"`
	DurationDays int    `json:"duration_days"`
}

// CalendarDayDetail lists every promotion running on the selected day.
type CalendarDayDetail struct {
	Date       string              `json:"date"`
	Title      string              `json:"title"`
	Promotions []CalendarPromotion `json:"promotions"`
}
