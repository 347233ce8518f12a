package api

import (
	"log"
	"strings"
	"sync"

	"github.com/danijuhaeni22/idx-signal-web/internal/state"
)

// FallbackBase is the last-resort API base: the backend's default local bind.
const FallbackBase = "http://127.0.0.1:8000"

// Resolver maintains the ordered list of candidate API bases and remembers
// the last one that answered. Order: explicit override, previously
// remembered base, configured bases, then the hardcoded fallback, with
// duplicates removed.
type Resolver struct {
	mu         sync.Mutex
	candidates []string
	preferred  string
	stateFile  string // "" disables persistence
}

// NewResolver builds a resolver from the override (may be empty), the
// remembered base loaded from stateFile, and the configured bases.
func NewResolver(override string, bases []string, stateFile string) *Resolver {
	remembered := ""
	if stateFile != "" {
		remembered = state.Load(stateFile).APIBase
	}

	ordered := make([]string, 0, len(bases)+3)
	ordered = append(ordered, override, remembered)
	ordered = append(ordered, bases...)
	ordered = append(ordered, FallbackBase)

	seen := make(map[string]bool, len(ordered))
	deduped := make([]string, 0, len(ordered))
	for _, b := range ordered {
		b = strings.TrimRight(strings.TrimSpace(b), "/")
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		deduped = append(deduped, b)
	}

	return &Resolver{candidates: deduped, stateFile: stateFile}
}

// Candidates returns the bases to try, preferred base first.
func (r *Resolver) Candidates() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.candidates))
	if r.preferred != "" {
		out = append(out, r.preferred)
	}
	for _, b := range r.candidates {
		if b != r.preferred {
			out = append(out, b)
		}
	}
	return out
}

// Remember marks base as the preferred candidate and persists it so the
// next session starts there.
func (r *Resolver) Remember(base string) {
	r.mu.Lock()
	changed := r.preferred != base
	r.preferred = base
	stateFile := r.stateFile
	r.mu.Unlock()

	if !changed || stateFile == "" {
		return
	}
	st := state.Load(stateFile)
	st.APIBase = base
	if err := state.Save(stateFile, st); err != nil {
		log.Printf("[WARN] persist API base: %v", err)
	}
}

// Preferred returns the currently remembered base, or "".
func (r *Resolver) Preferred() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.preferred
}
