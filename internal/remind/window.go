package remind

import (
	"time"
)

// WindowOptions carries the configuration the window needs for busy-level
// accounting. It is set once at creation and copied into every derived
// window.
type WindowOptions struct {
	Location        *time.Location
	BusyAlgorithm   int
	UntimedDuration time.Duration
}

// Window caches parsed reminders for the month before, of, and after the
// centered date. Windows are immutable: Advance and Refresh return a new
// window and never touch an existing one, so callers may keep iterating
// over a window they already hold.
type Window struct {
	Center time.Time // first of the center month, midnight

	Prev MonthData
	Curr MonthData
	Next MonthData

	AllTimed   LaneSet   // lane-wise concatenation of prev+curr+next
	AllUntimed []Untimed // flat concatenation of prev+curr+next
	BusyLevels [31]int   // center month only; index 0 is day 1
	ErrMsg     string    // first advisory error among the three fetches

	fetcher Fetcher
	opts    WindowOptions
}

// NewWindow fetches three months centered on t's month and assembles the
// merged views.
func NewWindow(f Fetcher, opts WindowOptions, t time.Time) (*Window, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	center := MonthStart(t, opts.Location)

	prev, err := f.FetchMonth(center.AddDate(0, -1, 0))
	if err != nil {
		return nil, err
	}
	curr, err := f.FetchMonth(center)
	if err != nil {
		return nil, err
	}
	next, err := f.FetchMonth(center.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	return assemble(f, opts, center, prev, curr, next)
}

// Advance re-centers the window on the month containing t. A timestamp in
// the current center month is a no-op that returns the receiver unchanged;
// a move to an adjacent month fetches only the one newly needed month; any
// farther jump rebuilds the window from scratch. This asymmetric cost is
// what keeps day-by-day scrolling cheap.
func (w *Window) Advance(t time.Time) (*Window, error) {
	target := MonthStart(t, w.opts.Location)

	switch {
	case target.Equal(w.Center):
		return w, nil

	case target.Equal(w.Center.AddDate(0, 1, 0)):
		next, err := w.fetcher.FetchMonth(target.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}
		return assemble(w.fetcher, w.opts, target, w.Curr, w.Next, next)

	case target.Equal(w.Center.AddDate(0, -1, 0)):
		prev, err := w.fetcher.FetchMonth(target.AddDate(0, -1, 0))
		if err != nil {
			return nil, err
		}
		return assemble(w.fetcher, w.opts, target, prev, w.Prev, w.Curr)

	default:
		return NewWindow(w.fetcher, w.opts, target)
	}
}

// Refresh rebuilds the whole window at the current center, re-reading every
// month. Used after the reminders file changes on disk.
func (w *Window) Refresh() (*Window, error) {
	return NewWindow(w.fetcher, w.opts, w.Center)
}

// assemble builds the merged views. Each month's lanes and untimed list are
// already chronological, so concatenating prev, curr, next in order stays
// chronological and no re-sort is needed.
func assemble(f Fetcher, opts WindowOptions, center time.Time, prev, curr, next MonthData) (*Window, error) {
	w := &Window{
		Center:  center,
		Prev:    prev,
		Curr:    curr,
		Next:    next,
		fetcher: f,
		opts:    opts,
	}

	for lane := 0; lane < NumLanes; lane++ {
		merged := make([]Timed, 0, len(prev.Timed[lane])+len(curr.Timed[lane])+len(next.Timed[lane]))
		merged = append(merged, prev.Timed[lane]...)
		merged = append(merged, curr.Timed[lane]...)
		merged = append(merged, next.Timed[lane]...)
		w.AllTimed[lane] = merged
	}

	w.AllUntimed = make([]Untimed, 0, len(prev.Untimed)+len(curr.Untimed)+len(next.Untimed))
	w.AllUntimed = append(w.AllUntimed, prev.Untimed...)
	w.AllUntimed = append(w.AllUntimed, curr.Untimed...)
	w.AllUntimed = append(w.AllUntimed, next.Untimed...)

	levels, err := BusyLevels(center, curr.Timed, curr.Untimed, opts.BusyAlgorithm, opts.UntimedDuration)
	if err != nil {
		return nil, err
	}
	w.BusyLevels = levels

	for _, msg := range []string{prev.ErrMsg, curr.ErrMsg, next.ErrMsg} {
		if msg != "" {
			w.ErrMsg = msg
			break
		}
	}

	return w, nil
}
