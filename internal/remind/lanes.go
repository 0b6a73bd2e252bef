package remind

import (
	"time"
)

// hourSlots is the number of occupancy rows per month: one per hour, sized
// for the longest month.
const hourSlots = 24 * 31

// occupancy tracks which hour slots are taken in each lane. One grid lives
// for the duration of a single month fetch and is discarded afterwards.
type occupancy struct {
	monthStart time.Time
	used       [hourSlots][NumLanes]bool
}

func newOccupancy(monthStart time.Time) *occupancy {
	return &occupancy{monthStart: monthStart}
}

// assignLane places the reminder in the lowest lane whose hour slots are
// all free and marks them taken. When every lane collides the reminder
// goes in the last lane unconditionally; overlapping display is the
// accepted degradation.
func (o *occupancy) assignLane(r Timed) int {
	top := int(r.Start.Sub(o.monthStart) / time.Hour)
	bottom := int(r.Finish.Sub(o.monthStart) / time.Hour)
	// A finish on an exact hour boundary does not occupy that slot.
	if r.Finish.Sub(o.monthStart)%time.Hour == 0 {
		bottom--
	}
	if bottom < top {
		bottom = top
	}
	if top < 0 {
		top = 0
	}
	if bottom < 0 {
		bottom = 0
	}
	if bottom >= hourSlots {
		bottom = hourSlots - 1
	}
	if top >= hourSlots {
		top = hourSlots - 1
	}

	for lane := 0; lane < NumLanes; lane++ {
		free := true
		for slot := top; slot <= bottom; slot++ {
			if o.used[slot][lane] {
				free = false
				break
			}
		}
		if free {
			for slot := top; slot <= bottom; slot++ {
				o.used[slot][lane] = true
			}
			return lane
		}
	}
	return NumLanes - 1
}
