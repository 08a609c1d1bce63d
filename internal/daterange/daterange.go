// Package daterange holds the calendar-day arithmetic shared by the promotion
// calendar and the sales reports. Every function is pure: no clocks, no globals.
package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GridDays is the fixed size of a month grid: six weeks of seven days.
const GridDays = 42

const (
	dayLayout        = "Jan 02, 2006"
	dayNoYearLayout  = "Jan 02"
	isoDayLayout     = time.DateOnly
	rfc3339DayPrefix = len(isoDayLayout)
	secondsPerDay    = 24 * 60 * 60
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvertedRange matches ErrInvalidDateFormat with errors.Is.
	ErrInvertedRange = fmt.Errorf("%w: end date precedes start date", ErrInvalidDateFormat)
)

// ParseDate accepts "2006-01-02" or a timestamp starting with it and returns
// the calendar day at midnight UTC. Timestamps keep their written date, not
// the date they fall on in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDateFormat)
	}

	if len(value) > rfc3339DayPrefix {
		if !isTimestamp(value) {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
		}
		value = value[:rfc3339DayPrefix]
	}

	day, err := time.Parse(isoDayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
	}

	return day, nil
}

// upstream sends both RFC3339 and zoneless timestamps
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	time.DateTime,
}

func isTimestamp(value string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// FormatISO renders the calendar day of t as "2006-01-02".
func FormatISO(t time.Time) string {
	return t.Format(isoDayLayout)
}

// Day strips the time of day from t, keeping its location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// civil maps t to midnight UTC of the calendar day it shows in its own
// location, so days coming from different zones compare by their written date.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b show the same calendar day.
func SameDay(a, b time.Time) bool {
	return civil(a).Equal(civil(b))
}

// CompareDays returns -1, 0 or +1 as a's calendar day is before, equal to or
// after b's.
func CompareDays(a, b time.Time) int {
	return civil(a).Compare(civil(b))
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// StartOfWeek returns the closest day on or before t that falls on weekStart.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := Day(t)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// AddMonths moves to the first day of the month n months away from t. It never
// overflows into the following month the way time.AddDate does on the 31st.
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// MonthGrid returns the 42 days of the Sunday-first grid covering ref's month.
func MonthGrid(ref time.Time) []time.Time {
	return MonthGridFrom(ref, time.Sunday)
}

// MonthGridFrom is MonthGrid with a configurable first weekday.
func MonthGridFrom(ref time.Time, weekStart time.Weekday) []time.Time {
	first := StartOfWeek(StartOfMonth(ref), weekStart)

	days := make([]time.Time, GridDays)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}

	return days
}

// IsWithinRange reports whether date falls on a calendar day between start and
// end, both inclusive. An inverted range contains no day.
func IsWithinRange(date, start, end time.Time) bool {
	if CompareDays(start, end) > 0 {
		return false
	}
	return CompareDays(date, start) >= 0 && CompareDays(date, end) <= 0
}

// ContainsDate is IsWithinRange over "2006-01-02" strings. Unparsable inputs
// and inverted ranges are reported as errors.
func ContainsDate(date, start, end string) (bool, error) {
	d, s, e, err := parseTriple(date, start, end)
	if err != nil {
		return false, err
	}
	if CompareDays(s, e) > 0 {
		return false, ErrInvertedRange
	}
	return IsWithinRange(d, s, e), nil
}

func parseTriple(date, start, end string) (time.Time, time.Time, time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("date: %w", err)
	}
	s, e, err := parsePair(start, end)
	return d, s, e, err
}

func parsePair(start, end string) (time.Time, time.Time, error) {
	s, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date: %w", err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date: %w", err)
	}
	return s, e, nil
}

// FormatRange renders a promotion period for display:
//
//	Jun 10, 2024
//	Jun 10 - Jun 12, 2024
//	Dec 30, 2024 - Jan 02, 2025
func FormatRange(start, end time.Time) string {
	if SameDay(start, end) {
		return start.Format(dayLayout)
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format(dayNoYearLayout), end.Format(dayLayout))
	}
	return fmt.Sprintf("%s - %s", start.Format(dayLayout), end.Format(dayLayout))
}

// FormatSpan renders "Jun 03 - Jun 09", the short label of a week span.
func FormatSpan(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format(dayNoYearLayout), end.Format(dayNoYearLayout))
}

// DurationInDays counts the calendar days from start to end, both included.
func DurationInDays(start, end time.Time) (int, error) {
	s, e := civil(start), civil(end)
	if s.After(e) {
		return 0, ErrInvertedRange
	}
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1, nil
}

// Duration is DurationInDays over "2006-01-02" strings.
func Duration(start, end string) (int, error) {
	s, e, err := parsePair(start, end)
	if err != nil {
		return 0, err
	}
	return DurationInDays(s, e)
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
