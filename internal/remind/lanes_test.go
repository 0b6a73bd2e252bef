package remind

import (
	"testing"
	"time"
)

func timedAt(monthStart time.Time, day, hour, min, durMin int) Timed {
	start := time.Date(monthStart.Year(), monthStart.Month(), day, hour, min, 0, 0, monthStart.Location())
	return Timed{
		Start:     start,
		Finish:    start.Add(time.Duration(durMin) * time.Minute),
		Message:   "test",
		HasWeight: true,
	}
}

func TestAssignLaneSequentialShareLane(t *testing.T) {
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	grid := newOccupancy(monthStart)

	// Back-to-back meetings: an end on the hour does not occupy the
	// following slot, so both fit in lane 0.
	first := grid.assignLane(timedAt(monthStart, 15, 9, 0, 60))
	second := grid.assignLane(timedAt(monthStart, 15, 10, 0, 60))

	if first != 0 || second != 0 {
		t.Errorf("Sequential reminders should share lane 0, got %d and %d", first, second)
	}
}

func TestAssignLaneOverlapSplits(t *testing.T) {
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	grid := newOccupancy(monthStart)

	a := grid.assignLane(timedAt(monthStart, 15, 9, 0, 120))
	b := grid.assignLane(timedAt(monthStart, 15, 10, 0, 60))
	c := grid.assignLane(timedAt(monthStart, 15, 12, 0, 60))

	if a != 0 {
		t.Errorf("First reminder should take lane 0, got %d", a)
	}
	if b != 1 {
		t.Errorf("Overlapping reminder should take lane 1, got %d", b)
	}
	if c != 0 {
		t.Errorf("Non-overlapping reminder should reuse lane 0, got %d", c)
	}
}

func TestAssignLaneLastLaneFallback(t *testing.T) {
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	grid := newOccupancy(monthStart)

	// More simultaneous reminders than lanes: the extras pile into the
	// last lane rather than failing.
	var lanes []int
	for i := 0; i < NumLanes+2; i++ {
		lanes = append(lanes, grid.assignLane(timedAt(monthStart, 15, 9, 0, 60)))
	}

	for i := 0; i < NumLanes; i++ {
		if lanes[i] != i {
			t.Errorf("Reminder %d should take lane %d, got %d", i, i, lanes[i])
		}
	}
	for i := NumLanes; i < len(lanes); i++ {
		if lanes[i] != NumLanes-1 {
			t.Errorf("Overflow reminder %d should fall back to lane %d, got %d", i, NumLanes-1, lanes[i])
		}
	}
}

func TestAssignLaneZeroDuration(t *testing.T) {
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	grid := newOccupancy(monthStart)

	// Zero-duration reminder exactly on an hour boundary still occupies
	// its own slot.
	a := grid.assignLane(timedAt(monthStart, 15, 9, 0, 0))
	b := grid.assignLane(timedAt(monthStart, 15, 9, 0, 0))

	if a != 0 || b != 1 {
		t.Errorf("Expected lanes 0 and 1 for coincident zero-duration reminders, got %d and %d", a, b)
	}
}

func TestAssignLaneMonthOverflowClamped(t *testing.T) {
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	grid := newOccupancy(monthStart)

	// Runs past the end of the month; must clamp instead of indexing out
	// of the grid.
	lane := grid.assignLane(timedAt(monthStart, 31, 23, 0, 300))
	if lane != 0 {
		t.Errorf("Expected lane 0, got %d", lane)
	}
}

func TestAssignLaneNonOverlapInvariant(t *testing.T) {
	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	grid := newOccupancy(monthStart)

	reminders := []Timed{
		timedAt(monthStart, 5, 9, 0, 90),
		timedAt(monthStart, 5, 9, 30, 60),
		timedAt(monthStart, 5, 10, 0, 120),
		timedAt(monthStart, 5, 14, 0, 60),
		timedAt(monthStart, 6, 9, 0, 60),
		timedAt(monthStart, 6, 9, 0, 30),
	}

	var lanes LaneSet
	for _, r := range reminders {
		lane := grid.assignLane(r)
		lanes[lane] = append(lanes[lane], r)
	}

	for lane, entries := range lanes {
		if lane == NumLanes-1 {
			continue // overlap allowed in the fallback lane
		}
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				a, b := entries[i], entries[j]
				if a.Start.Before(b.Finish) && b.Start.Before(a.Finish) {
					t.Errorf("Lane %d holds overlapping reminders %v and %v", lane, a.Start, b.Start)
				}
			}
		}
	}
}
