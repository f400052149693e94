// Package period maps instants onto the reporting periods compliance records
// are keyed by.
package period

import (
	"math"
	"time"
)

// Key identifies one compliance reporting period.
type Key struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Week  int `json:"week"`
}

// ISOWeek returns the ISO-8601 week number of t's UTC calendar date.
// Weeks start on Monday and week 1 is the week containing the year's first Thursday.
func ISOWeek(t time.Time) int {
	_, week := t.UTC().ISOWeek()
	return week
}

// KeyFor returns the calendar year, calendar month and ISO week of t in UTC.
// Year is the calendar year, not the ISO week-numbering year, so the first days
// of January can carry week 52 or 53.
func KeyFor(t time.Time) Key {
	u := t.UTC()
	return Key{Year: u.Year(), Month: int(u.Month()), Week: ISOWeek(u)}
}

// Less orders keys chronologically. Within a month the week is compared by
// SortWeek, so (2027,1,53) sorts before (2027,1,1).
func (k Key) Less(o Key) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	if k.Month != o.Month {
		return k.Month < o.Month
	}
	return k.SortWeek() < o.SortWeek()
}

// SortWeek ranks the ISO week inside its calendar month. Early January days
// still in last year's week 52/53 rank 0; late December days already in next
// year's week 1 rank 54.
func (k Key) SortWeek() int {
	switch {
	case k.Month == 1 && k.Week >= 52:
		return 0
	case k.Month == 12 && k.Week == 1:
		return 54
	default:
		return k.Week
	}
}

// DaysBetween returns the whole days elapsed between a and b, ignoring order.
func DaysBetween(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

// MinutesBetween returns the absolute difference between a and b in minutes.
func MinutesBetween(a, b time.Time) float64 {
	return math.Abs(a.Sub(b).Minutes())
}
