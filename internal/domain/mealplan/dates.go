package mealplan

import "time"

// TruncateDay drops the time of day, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive span of calendar days
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange normalizes both ends to calendar days and checks ordering.
func NewDateRange(from, to time.Time) (DateRange, error) {
	r := DateRange{From: TruncateDay(from), To: TruncateDay(to)}
	if r.To.Before(r.From) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// WeekOf returns the Monday-to-Sunday week containing t.
func WeekOf(t time.Time) DateRange {
	day := TruncateDay(t)
	// time.Sunday is 0; shift so Monday is the first day
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return DateRange{From: monday, To: monday.AddDate(0, 0, 6)}
}

// Contains reports whether t falls on a day inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(r.From) && !d.After(r.To)
}

// Days returns the number of calendar days in the range
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}
