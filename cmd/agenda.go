package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"verdandi/internal/remind"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const messageWidth = 60

// printAgenda renders the window's center month: one heading per day that
// has reminders, timed entries first, untimed after.
func printAgenda(w *remind.Window) {
	color.New(color.Bold, color.Underline).Printf("%s\n", w.Center.Format("January 2006"))
	if w.ErrMsg != "" {
		color.New(color.FgYellow).Printf("remind: %s\n", w.ErrMsg)
	}

	days := w.Center.AddDate(0, 1, -1).Day()
	for day := 1; day <= days; day++ {
		date := w.Center.AddDate(0, 0, day-1)
		timed := timedOn(w.AllTimed, date)
		untimed := untimedOn(w.AllUntimed, date)
		if len(timed) == 0 && len(untimed) == 0 {
			continue
		}

		heading := color.New(color.Bold).Sprint(date.Format("Mon Jan 02"))
		fmt.Printf("%s %s\n", heading, busyBar(w.BusyLevels[day-1]))
		printDay(timed, untimed)
	}
}

func printDay(timed []remind.Timed, untimed []remind.Untimed) {
	for _, r := range timed {
		span := fmt.Sprintf("%s-%s", r.Start.Format(cfg.TimeFormat), r.Finish.Format(cfg.TimeFormat))
		fmt.Printf("  %s  %s\n", color.CyanString("%-11s", span), truncate(r.Message))
	}
	for _, r := range untimed {
		fmt.Printf("  %s  %s\n", color.GreenString("%-11s", "all day"), truncate(r.Message))
	}
}

// timedOn flattens the lanes to the timed reminders starting on the given
// day, in chronological order.
func timedOn(lanes remind.LaneSet, day time.Time) []remind.Timed {
	var out []remind.Timed
	for _, lane := range lanes {
		for _, r := range lane {
			if sameDay(r.Start, day) {
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func untimedOn(list []remind.Untimed, day time.Time) []remind.Untimed {
	var out []remind.Untimed
	for _, r := range list {
		if sameDay(r.Start, day) {
			out = append(out, r)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// busyBar draws a small colored bar for a day's busy level.
func busyBar(level int) string {
	if level <= 0 {
		return ""
	}
	width := level
	if width > 12 {
		width = 12
	}
	bar := strings.Repeat("▪", width)
	switch {
	case level <= 2:
		return color.GreenString(bar)
	case level <= 5:
		return color.YellowString(bar)
	default:
		return color.RedString(bar)
	}
}

func truncate(msg string) string {
	return runewidth.Truncate(msg, messageWidth, "...")
}
