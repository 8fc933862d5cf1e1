// Package directory serves the static AI-company lookup: a read-only
// JSON file, substring search, and an explicit reload trigger.
package directory

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Entry is one company or tool in the directory file.
type Entry struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Summary  string   `json:"summary"`
	UseCases []string `json:"use_cases"`
	Website  string   `json:"website,omitempty"`
}

// Store holds the loaded directory. Reload swaps the entry list under a
// write lock; searches take the read lock.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries []Entry
}

// NewStore creates a Store for the given JSON file without loading it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads and parses the directory file, replacing the current entries.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return errors.Wrapf(err, "reading directory file %s", s.path)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return errors.Wrapf(err, "parsing directory file %s", s.path)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Reload re-reads the file and reports how many entries are now loaded.
// On failure the previous entries stay in place.
func (s *Store) Reload() (int, error) {
	if err := s.Load(); err != nil {
		return s.Len(), err
	}
	return s.Len(), nil
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// All returns a copy of every entry.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Search returns entries whose name, category, summary, or any use case
// contains the query, case-insensitively. An empty query matches all.
func (s *Store) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.All()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, 0)
	for _, entry := range s.entries {
		if entry.matches(query) {
			result = append(result, entry)
		}
	}
	return result
}

func (e Entry) matches(query string) bool {
	if strings.Contains(strings.ToLower(e.Name), query) ||
		strings.Contains(strings.ToLower(e.Category), query) ||
		strings.Contains(strings.ToLower(e.Summary), query) {
		return true
	}
	for _, uc := range e.UseCases {
		if strings.Contains(strings.ToLower(uc), query) {
			return true
		}
	}
	return false
}
