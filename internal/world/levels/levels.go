// Package levels discovers level files on disk.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Wirt4/racing-snakes-rails-edition-sub000/internal/world/arena"
)

// Entry represents a loadable level in the levels directory
type Entry struct {
	Name string // level name, or the file name without extension
	Path string
}

// Scan returns every valid level file in dir, sorted by name.
// Files that fail to load are skipped.
func Scan(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var found []Entry
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		level, err := arena.LoadLevel(path)
		if err != nil {
			continue
		}

		name := level.Name
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		}
		found = append(found, Entry{Name: name, Path: path})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// Find returns the entry called name.
func Find(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}
