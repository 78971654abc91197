package source

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "queue.cc", "first\nsecond\nthird\n")

	c := NewCache()
	lines, err := c.Lines(path)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}

	// Trailing newline yields a final empty element.
	want := []string{"first", "second", "third", ""}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLinesCached(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "stack.cc", "original")

	c := NewCache()
	if _, err := c.Lines(path); err != nil {
		t.Fatalf("Lines failed: %v", err)
	}

	// Rewrite the file; the cache must keep serving the first read.
	if err := os.WriteFile(path, []byte("changed"), 0644); err != nil {
		t.Fatalf("Failed to rewrite fixture: %v", err)
	}

	lines, err := c.Lines(path)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if lines[0] != "original" {
		t.Errorf("cache re-read the file: got %q", lines[0])
	}
	if c.Len() != 1 {
		t.Errorf("cache holds %d files, want 1", c.Len())
	}
}

func TestLinesUnavailable(t *testing.T) {
	c := NewCache()

	_, err := c.Lines(filepath.Join(t.TempDir(), "missing.cc"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var unavailable *FileUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("error is %T, want *FileUnavailable", err)
	}
	if unavailable.Path == "" {
		t.Error("FileUnavailable.Path is empty")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("FileUnavailable does not wrap the underlying error")
	}
}

func TestLinesFailureNotCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.cc")

	c := NewCache()
	if _, err := c.Lines(path); err == nil {
		t.Fatal("expected error before file exists")
	}

	writeFile(t, dir, "late.cc", "now present")
	lines, err := c.Lines(path)
	if err != nil {
		t.Fatalf("Lines failed after file appeared: %v", err)
	}
	if lines[0] != "now present" {
		t.Errorf("got %q, want %q", lines[0], "now present")
	}
}

func TestLinesConcurrent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "shared.cc", "a\nb")

	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lines, err := c.Lines(path)
			if err != nil {
				t.Errorf("Lines failed: %v", err)
				return
			}
			if lines[0] != "a" {
				t.Errorf("got %q, want %q", lines[0], "a")
			}
		}()
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Errorf("cache holds %d files, want 1", c.Len())
	}
}
