// Package source loads and caches source files referenced by stack frames.
package source

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// FileUnavailable is returned when a source file referenced by a frame
// cannot be read. Tracer data frequently references transient build paths,
// so callers are expected to treat this as skippable.
type FileUnavailable struct {
	Path string
	Err  error
}

func (e *FileUnavailable) Error() string {
	return fmt.Sprintf("source file unavailable: %s: %v", e.Path, e.Err)
}

func (e *FileUnavailable) Unwrap() error {
	return e.Err
}

// Cache is a read-through cache of file contents keyed by path. File
// contents are treated as immutable for the cache's lifetime: the first
// successful read wins and later reads of the same path hit the cache.
// Safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	files map[string][]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{files: make(map[string][]string)}
}

// Lines returns the file's lines, reading the file on first request.
// Returns *FileUnavailable if the path cannot be read; failed reads are
// not cached, so a file that appears later is picked up.
func (c *Cache) Lines(path string) ([]string, error) {
	c.mu.RLock()
	lines, ok := c.files[path]
	c.mu.RUnlock()
	if ok {
		return lines, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileUnavailable{Path: path, Err: err}
	}
	lines = strings.Split(string(data), "\n")

	c.mu.Lock()
	// Another goroutine may have populated the entry between the read
	// lock and here; keep the existing lines so all callers see one copy.
	if existing, present := c.files[path]; present {
		lines = existing
	} else {
		c.files[path] = lines
	}
	c.mu.Unlock()

	return lines, nil
}

// Len reports how many files are currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}
