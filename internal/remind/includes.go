package remind

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ListIncludedFiles returns the root reminders file followed by every file
// pulled in through an INCLUDE directive, in discovery order. The directive
// keyword is matched case-insensitively. An unreadable root file is an
// error; include targets are not checked for existence here.
func ListIncludedFiles(root string) ([]string, error) {
	f, err := os.Open(root)
	if err != nil {
		return nil, fmt.Errorf("cannot open reminders file: %w", err)
	}
	defer f.Close()

	files := []string{root}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && strings.EqualFold(fields[0], "include") {
			files = append(files, fields[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", root, err)
	}
	return files, nil
}
