package watchlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore keeps the watchlist as a JSON array of tickers in a single file.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore creates a store backed by the given file. The file is
// created lazily on first write.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Add(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.read()
	list, changed := insert(list, ticker)
	if !changed {
		return nil
	}
	return s.write(list)
}

func (s *JSONStore) Remove(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.read()
	list, changed := drop(list, ticker)
	if !changed {
		return nil
	}
	return s.write(list)
}

func (s *JSONStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

func (s *JSONStore) Close() error { return nil }

// read never fails: a missing or unparseable file is an empty watchlist.
func (s *JSONStore) read() []string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}
	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	return list
}

func (s *JSONStore) write(list []string) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0644)
}
