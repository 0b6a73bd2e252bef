package remind

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// occurrence is one entry from remind's next-occurrence output.
type occurrence struct {
	ts  time.Time
	msg string
}

// FindNext returns the earliest occurrence strictly after the given time
// whose message matches pattern and which is not tagged nodisplay. The
// second return is false when nothing in the search horizon matches.
//
// Remind is queried twice, for the day containing after and for the day
// following it: a reminder that recurs today but has already passed would
// otherwise hide its next real occurrence. The two result sets carry no
// cross-invocation ordering, so they are sorted before scanning.
func (c *Client) FindNext(pattern *regexp.Regexp, after time.Time) (time.Time, bool, error) {
	day := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, c.Location)

	var all []occurrence
	for _, d := range []time.Time{day, day.AddDate(0, 0, 1)} {
		occs, err := c.nextOccurrences(d)
		if err != nil {
			return time.Time{}, false, err
		}
		all = append(all, occs...)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ts.Before(all[j].ts) })

	ts, ok := pickNext(all, pattern, after)
	return ts, ok, nil
}

// nextOccurrenceArgs builds the argv for one next-occurrence run. The date
// goes as three separate tokens; remind consumes one component per argument.
func nextOccurrenceArgs(file string, day time.Time) []string {
	return []string{"-n", "-s", "-b1", file,
		day.Format("Jan"), strconv.Itoa(day.Day()), day.Format("2006")}
}

// nextOccurrences runs remind in next-occurrence mode for one base day.
func (c *Client) nextOccurrences(day time.Time) ([]occurrence, error) {
	cmd := exec.Command(c.RemindCommand, nextOccurrenceArgs(c.RemindFile, day)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", c.RemindCommand, err)
	}

	occs := c.parseNextOutput(stdout)
	_ = cmd.Wait()

	return occs, nil
}

// parseNextOutput reads next-occurrence lines in the same simple format as
// the month fetch, minus the fileinfo annotations. Entries tagged nodisplay
// are dropped here so a search can never land on them; malformed lines are
// skipped.
func (c *Client) parseNextOutput(r io.Reader) []occurrence {
	var occs []occurrence
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, " ", 5)
		if len(parts) < 5 {
			continue
		}
		dateStr, tag, timeStr, msg := parts[0], parts[1], parts[3], parts[4]

		if strings.Contains(strings.ToLower(tag), "nodisplay") {
			continue
		}
		day, err := time.ParseInLocation("2006/01/02", dateStr, c.Location)
		if err != nil {
			continue
		}

		ts := day
		if timeStr != "*" {
			min, ok := parseMinutes(timeStr)
			if !ok {
				continue
			}
			ts = time.Date(day.Year(), day.Month(), day.Day(), 0, min, 0, 0, c.Location)
		}
		occs = append(occs, occurrence{ts: ts, msg: msg})
	}

	return occs
}

// pickNext scans sorted occurrences for the first one past after whose
// message matches pattern.
func pickNext(occs []occurrence, pattern *regexp.Regexp, after time.Time) (time.Time, bool) {
	for _, o := range occs {
		if o.ts.After(after) && pattern.MatchString(o.msg) {
			return o.ts, true
		}
	}
	return time.Time{}, false
}
