// Package corpus discovers, parses, and validates the registration
// documents kept in a corpus directory, one JSON file per registrant.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"zonewarden/internal/types"
)

// DocumentError reports a document that could not be parsed at all. It is
// fatal for that document only: no rule checks run against it, and other
// documents are unaffected.
type DocumentError struct {
	Name string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("cannot validate %s: %v", e.Name, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// Loader reads registration documents from a corpus directory. A document's
// name is its filename without the .json extension.
type Loader struct {
	dir string
}

// NewLoader creates a Loader for the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the corpus directory.
func (l *Loader) Dir() string {
	return l.dir
}

// List returns the sorted names of all documents in the corpus: every .json
// file directly under the directory. Dotfiles and subdirectories are
// skipped.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory %s: %w", l.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and parses one document by name.
func (l *Loader) Load(name string) (*types.Document, error) {
	path := filepath.Join(l.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &DocumentError{Name: name, Err: types.ErrDocumentNotFound}
		}
		return nil, &DocumentError{Name: name, Err: err}
	}

	doc, err := types.ParseDocument(name, data)
	if err != nil {
		return nil, &DocumentError{Name: name, Err: err}
	}
	return doc, nil
}
