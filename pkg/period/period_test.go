package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestISOWeek(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want int
	}{
		{"first thursday anchors week one", date(2026, time.January, 1), 1},
		{"monday of week two", date(2026, time.January, 5), 2},
		{"late december in week 53", date(2026, time.December, 31), 53},
		{"early january still in previous year's week", date(2027, time.January, 1), 53},
		{"mid year", date(2024, time.June, 15), 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ISOWeek(tc.at))
		})
	}
}

func TestISOWeekUsesUTCDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// Monday 00:30 IST is still Sunday in UTC.
	local := time.Date(2026, time.January, 5, 0, 30, 0, 0, ist)
	assert.Equal(t, 1, ISOWeek(local))
}

func TestKeyFor(t *testing.T) {
	k := KeyFor(date(2027, time.January, 1))
	assert.Equal(t, Key{Year: 2027, Month: 1, Week: 53}, k)

	k = KeyFor(date(2026, time.March, 18))
	assert.Equal(t, Key{Year: 2026, Month: 3, Week: 12}, k)
}

func TestKeyLess(t *testing.T) {
	assert.True(t, Key{2025, 12, 52}.Less(Key{2026, 1, 1}))
	assert.True(t, Key{2026, 1, 1}.Less(Key{2026, 2, 5}))
	assert.True(t, Key{2026, 2, 5}.Less(Key{2026, 2, 6}))
	assert.False(t, Key{2026, 2, 6}.Less(Key{2026, 2, 6}))
}

func TestKeyLessAcrossYearBoundaryWeeks(t *testing.T) {
	jan1 := KeyFor(date(2027, time.January, 1))
	jan20 := KeyFor(date(2027, time.January, 20))
	assert.Equal(t, Key{2027, 1, 53}, jan1)
	assert.Equal(t, Key{2027, 1, 3}, jan20)
	assert.True(t, jan1.Less(jan20))
	assert.False(t, jan20.Less(jan1))

	dec28 := KeyFor(date(2026, time.December, 28))
	assert.Equal(t, Key{2026, 12, 53}, dec28)
	assert.True(t, Key{2025, 12, 52}.Less(Key{2025, 12, 1}), "Dec 29-31 fall in next year's week 1")

	assert.Equal(t, 0, Key{2027, 1, 53}.SortWeek())
	assert.Equal(t, 54, Key{2025, 12, 1}.SortWeek())
	assert.Equal(t, 3, Key{2027, 1, 3}.SortWeek())
}

func TestDaysBetween(t *testing.T) {
	now := date(2026, time.March, 18)

	assert.Equal(t, 0, DaysBetween(now, now.Add(-23*time.Hour)))
	assert.Equal(t, 1, DaysBetween(now, now.Add(-24*time.Hour)))
	assert.Equal(t, 2, DaysBetween(now, now.Add(-71*time.Hour)))
	assert.Equal(t, 3, DaysBetween(now.Add(-72*time.Hour), now), "order does not matter")
}

func TestMinutesBetween(t *testing.T) {
	now := date(2026, time.March, 18)
	assert.InDelta(t, 30.0, MinutesBetween(now, now.Add(-30*time.Minute)), 1e-9)
	assert.InDelta(t, 30.0, MinutesBetween(now.Add(-30*time.Minute), now), 1e-9)
}
