package remind

import (
	"fmt"
	"time"
)

// Busy-level algorithms selectable through the busy_algorithm setting.
const (
	BusyCount    = 1 // reminders per day
	BusyDuration = 2 // total reminder hours per day
)

// BusyLevels computes the per-day busy metric for the month beginning at
// monthStart. Index 0 is day 1. Reminders tagged noweight are skipped.
// An algorithm other than BusyCount or BusyDuration is a configuration
// error.
func BusyLevels(monthStart time.Time, timed LaneSet, untimed []Untimed, algorithm int, untimedDur time.Duration) ([31]int, error) {
	var levels [31]int
	switch algorithm {
	case BusyCount:
		countLevels(&levels, monthStart, timed, untimed)
	case BusyDuration:
		durationLevels(&levels, monthStart, timed, untimed, untimedDur)
	default:
		return levels, fmt.Errorf("unknown busy_algorithm %d", algorithm)
	}
	return levels, nil
}

// countLevels increments a day's level once per weighted reminder starting
// on it.
func countLevels(levels *[31]int, monthStart time.Time, timed LaneSet, untimed []Untimed) {
	bump := func(start time.Time) {
		if start.Year() == monthStart.Year() && start.Month() == monthStart.Month() {
			levels[start.Day()-1]++
		}
	}
	for _, lane := range timed {
		for _, r := range lane {
			if r.HasWeight {
				bump(r.Start)
			}
		}
	}
	for _, r := range untimed {
		if r.HasWeight {
			bump(r.Start)
		}
	}
}

// durationLevels credits each day with the hours a weighted reminder
// overlaps it, splitting multi-day reminders across the days they touch.
// Untimed reminders count for a fixed configured duration. Accumulation is
// in floating-point hours, truncated per day at the end; days shortened or
// stretched by DST are an accepted approximation.
func durationLevels(levels *[31]int, monthStart time.Time, timed LaneSet, untimed []Untimed, untimedDur time.Duration) {
	var hours [31]float64
	days := daysInMonth(monthStart)

	add := func(start, finish time.Time) {
		for day := 0; day < days; day++ {
			dayStart := monthStart.AddDate(0, 0, day)
			dayEnd := dayStart.AddDate(0, 0, 1)
			lo := start
			if dayStart.After(lo) {
				lo = dayStart
			}
			hi := finish
			if dayEnd.Before(hi) {
				hi = dayEnd
			}
			if hi.After(lo) {
				hours[day] += hi.Sub(lo).Hours()
			}
		}
	}

	for _, lane := range timed {
		for _, r := range lane {
			if r.HasWeight {
				add(r.Start, r.Finish)
			}
		}
	}
	for _, r := range untimed {
		if r.HasWeight {
			add(r.Start, r.Start.Add(untimedDur))
		}
	}

	for day := 0; day < days; day++ {
		levels[day] = int(hours[day])
	}
}
