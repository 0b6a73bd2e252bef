package remind

import (
	"time"
)

// NumLanes is the fixed number of display lanes for timed reminders.
// A reminder that cannot find a free lane is placed in the last lane and
// overlaps visually; the lane count never grows.
const NumLanes = 4

// Timed is a reminder with an explicit start time and duration.
type Timed struct {
	Start     time.Time
	Finish    time.Time // never before Start; equal for zero-duration entries
	Message   string
	File      string // source reminders file
	Line      string // line number within File, as reported by remind
	HasWeight bool   // false when tagged noweight; excluded from busy levels
}

// Untimed is a reminder anchored to a day with no specific time. Start is
// midnight of that day.
type Untimed struct {
	Start     time.Time
	Message   string
	File      string
	Line      string
	HasWeight bool
}

// LaneSet maps each lane to a chronologically ordered list of timed
// reminders. Within one lane no two intervals overlap, except in the
// last-lane fallback case.
type LaneSet [NumLanes][]Timed

// MonthData holds one month's worth of parsed reminders.
type MonthData struct {
	Timed   LaneSet
	Untimed []Untimed
	ErrMsg  string // first stderr line from remind, advisory only
}

// Fetcher provides one month of reminder data. Client is the production
// implementation; tests substitute their own.
type Fetcher interface {
	FetchMonth(t time.Time) (MonthData, error)
}

// MonthStart normalizes t to the first of its month at midnight in loc.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}

func daysInMonth(monthStart time.Time) int {
	return monthStart.AddDate(0, 1, -1).Day()
}
