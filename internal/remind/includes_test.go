package remind

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListIncludedFiles(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "reminders.rem")

	content := `# main reminders file
INCLUDE /etc/reminders/holidays.rem
REM Mar 15 AT 9:30 MSG Meeting
include work.rem
Include ~/personal.rem
REM Apr 1 MSG April fools
`
	if err := os.WriteFile(root, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := ListIncludedFiles(root)
	if err != nil {
		t.Fatalf("ListIncludedFiles failed: %v", err)
	}

	want := []string{
		root,
		"/etc/reminders/holidays.rem",
		"work.rem",
		"~/personal.rem",
	}
	if len(files) != len(want) {
		t.Fatalf("File count mismatch: got %d (%v), want %d", len(files), files, len(want))
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("File %d mismatch: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestListIncludedFilesNoIncludes(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "reminders.rem")
	if err := os.WriteFile(root, []byte("REM Mar 15 MSG Plain\n"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := ListIncludedFiles(root)
	if err != nil {
		t.Fatalf("ListIncludedFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != root {
		t.Errorf("Expected only the root file, got %v", files)
	}
}

func TestListIncludedFilesMissingRoot(t *testing.T) {
	_, err := ListIncludedFiles(filepath.Join(t.TempDir(), "does-not-exist.rem"))
	if err == nil {
		t.Fatal("Expected an error for a missing root file")
	}
}
