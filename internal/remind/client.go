package remind

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Client invokes the external remind executable and parses its simple
// calendar output.
type Client struct {
	RemindCommand string
	RemindFile    string
	Location      *time.Location
}

func NewClient(command, file string) *Client {
	return &Client{
		RemindCommand: command,
		RemindFile:    file,
		Location:      time.Local,
	}
}

// CheckRemind verifies the remind executable can be run at all.
func (c *Client) CheckRemind() error {
	if err := exec.Command(c.RemindCommand, "-h").Run(); err != nil {
		return fmt.Errorf("cannot run %s: %w", c.RemindCommand, err)
	}
	return nil
}

// FetchMonth runs remind over the month containing t and returns the parsed
// reminders, assigned to lanes as they are read. Only failure to run remind
// is an error; malformed output lines are dropped and reminders-file syntax
// errors come back through MonthData.ErrMsg.
func (c *Client) FetchMonth(t time.Time) (MonthData, error) {
	monthStart := MonthStart(t, c.Location)

	// Scan from the first of the month so recurring and multi-day
	// reminders spanning into it are included.
	args := []string{"-s", "-l", "-g", "-b2", c.RemindFile,
		monthStart.Format("Jan"), "1", monthStart.Format("2006")}
	cmd := exec.Command(c.RemindCommand, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return MonthData{}, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return MonthData{}, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return MonthData{}, fmt.Errorf("failed to start %s: %w", c.RemindCommand, err)
	}

	// Drain stderr concurrently so a chatty remind cannot deadlock the
	// stdout scan.
	errCh := make(chan string, 1)
	go func() { errCh <- firstLine(stderr) }()

	data := c.parseMonth(monthStart, stdout)
	data.ErrMsg = <-errCh

	// Exit status is not inspected; whatever parsed stands.
	_ = cmd.Wait()

	return data, nil
}

// parseMonth reads remind -s -l output line by line. Annotation lines carry
// the source file and line number for the data line that follows. Lane
// assignment is interleaved with parsing so the whole month shares one
// occupancy grid.
func (c *Client) parseMonth(monthStart time.Time, r io.Reader) MonthData {
	var data MonthData
	grid := newOccupancy(monthStart)

	scanner := bufio.NewScanner(r)
	srcFile, srcLine := "", ""

	for scanner.Scan() {
		line := scanner.Text()

		if file, lineNo, ok := parseFileInfo(line); ok {
			srcFile, srcLine = file, lineNo
			continue
		}

		timed, untimed := c.parseDataLine(line, srcFile, srcLine)
		switch {
		case timed != nil:
			lane := grid.assignLane(*timed)
			data.Timed[lane] = append(data.Timed[lane], *timed)
		case untimed != nil:
			data.Untimed = append(data.Untimed, *untimed)
		}
	}

	return data
}

// parseFileInfo recognizes annotation lines of the form
// "# fileinfo <lineno> <filename>".
func parseFileInfo(line string) (file, lineNo string, ok bool) {
	if !strings.HasPrefix(line, "#") {
		return "", "", false
	}
	fields := strings.Fields(line)
	for i, f := range fields {
		if strings.EqualFold(f, "fileinfo") && i+2 < len(fields) {
			return strings.Join(fields[i+2:], " "), fields[i+1], true
		}
	}
	return "", "", false
}

// parseDataLine parses one "Y/M/D <tag> <duration> <time> <message>" line.
// Both returns are nil for lines that are malformed or tagged nodisplay;
// parsing is best-effort and a bad line only drops that one reminder.
func (c *Client) parseDataLine(line, srcFile, srcLine string) (*Timed, *Untimed) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 5)
	if len(parts) < 5 {
		return nil, nil
	}
	dateStr, tag, durStr, timeStr, msg := parts[0], parts[1], parts[2], parts[3], parts[4]

	lowTag := strings.ToLower(tag)
	if strings.Contains(lowTag, "nodisplay") {
		return nil, nil
	}
	hasWeight := !strings.Contains(lowTag, "noweight")

	day, err := time.ParseInLocation("2006/01/02", dateStr, c.Location)
	if err != nil {
		return nil, nil
	}

	if timeStr == "*" {
		return nil, &Untimed{
			Start:     day,
			Message:   msg,
			File:      srcFile,
			Line:      srcLine,
			HasWeight: hasWeight,
		}
	}

	startMin, ok := parseMinutes(timeStr)
	if !ok {
		return nil, nil
	}
	durMin := 0
	if durStr != "*" {
		durMin, err = strconv.Atoi(durStr)
		if err != nil || durMin < 0 {
			return nil, nil
		}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, startMin, 0, 0, c.Location)
	return &Timed{
		Start:     start,
		Finish:    start.Add(time.Duration(durMin) * time.Minute),
		Message:   msg,
		File:      srcFile,
		Line:      srcLine,
		HasWeight: hasWeight,
	}, nil
}

// parseMinutes accepts a start time either as minutes past midnight or as
// HH:MM.
func parseMinutes(s string) (int, bool) {
	if h, m, found := strings.Cut(s, ":"); found {
		hour, err := strconv.Atoi(h)
		if err != nil || hour < 0 || hour > 23 {
			return 0, false
		}
		minute, err := strconv.Atoi(m)
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
		return hour*60 + minute, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= 24*60 {
		return 0, false
	}
	return n, true
}

// firstLine returns the first non-empty line of r, reading r to the end.
func firstLine(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	first := ""
	for scanner.Scan() {
		if first == "" {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				first = line
			}
		}
	}
	return first
}
