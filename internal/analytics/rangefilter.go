package analytics

import (
	"sort"
	"time"

	"github.com/wonny/tearsheet/internal/timeseries"
)

// RangeKey names a trailing or calendar date window.
type RangeKey string

// The fixed range enumeration; cycling order is enumeration order.
const (
	Range1M  RangeKey = "1M"
	Range3M  RangeKey = "3M"
	RangeYTD RangeKey = "YTD"
	Range1Y  RangeKey = "1Y"
	RangeAll RangeKey = "All"
)

// RangeKeys lists the enumeration in cycling order.
var RangeKeys = []RangeKey{Range1M, Range3M, RangeYTD, Range1Y, RangeAll}

// FilterRange restricts the table to the window named by key, anchored at
// the table's latest date. "All", an empty key or an unknown key return
// the table unchanged. A window that would be empty falls back to the
// unfiltered table: the view layer never shows nothing.
func FilterRange(t *timeseries.Table, key RangeKey) *timeseries.Table {
	if t == nil || t.Empty() {
		return t
	}

	if key == "" || key == RangeAll {
		return t
	}

	dates := t.Dates()
	end := dates[len(dates)-1]

	var start time.Time
	switch key {
	case Range1M:
		start = addCalendarMonths(end, -1)
	case Range3M:
		start = addCalendarMonths(end, -3)
	case RangeYTD:
		start = time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, end.Location())
	case Range1Y:
		start = addCalendarMonths(end, -12)
	default:
		return t
	}

	from := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(start) })
	if from >= len(dates) {
		return t
	}
	return t.Slice(from, len(dates))
}

// NextRangeKey advances cyclically through the enumeration, wrapping after
// the last entry. An empty or unrecognized key advances to the first entry.
func NextRangeKey(current RangeKey) RangeKey {
	if current == "" {
		current = RangeAll
	}

	idx := len(RangeKeys) - 1
	for i, key := range RangeKeys {
		if key == current {
			idx = i
			break
		}
	}
	return RangeKeys[(idx+1)%len(RangeKeys)]
}

// addCalendarMonths shifts a date by whole calendar months, clamping to the
// last day of the target month (Mar 31 − 1M is Feb 28/29, not Mar 3, which
// is what time.AddDate's normalization would produce).
func addCalendarMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	hh, mm, ss := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}
