package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// AppState is the small slice of client state that survives restarts:
// the last API base that actually answered.
type AppState struct {
	APIBase    string    `json:"api_base"`
	LastTicker string    `json:"last_ticker"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Load reads the app state from a JSON file. Returns a zero state if the
// file doesn't exist or doesn't parse; stale state is never fatal.
//
// Writers should load, modify and save so that unrelated fields survive.
func Load(filePath string) *AppState {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return &AppState{}
	}
	var st AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return &AppState{}
	}
	return &st
}

// Save writes the app state to a JSON file, creating parent directories as
// needed.
func Save(filePath string, st *AppState) error {
	st.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
