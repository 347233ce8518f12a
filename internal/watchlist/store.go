package watchlist

import "github.com/danijuhaeni22/idx-signal-web/internal/api"

// MaxEntries caps the watchlist size; adding past the cap drops the oldest
// (last) entry.
const MaxEntries = 50

// Store persists the user's ordered set of watched tickers. Insertion order
// is preserved with the newest entry first; duplicates are rejected by
// normalized symbol.
type Store interface {
	// Add normalizes ticker and prepends it. Adding an existing ticker is
	// a no-op.
	Add(ticker string) error
	// Remove deletes ticker from the list. Removing a non-member is a no-op.
	Remove(ticker string) error
	// List returns the watched tickers, newest first. A missing or
	// malformed backing store yields an empty list, never an error.
	List() ([]string, error)
	Close() error
}

// insert applies the add semantics to an in-memory list and reports whether
// anything changed.
func insert(list []string, ticker string) ([]string, bool) {
	t := api.NormalizeTicker(ticker)
	if t == "" {
		return list, false
	}
	for _, have := range list {
		if have == t {
			return list, false
		}
	}
	list = append([]string{t}, list...)
	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	return list, true
}

// drop applies the remove semantics and reports whether anything changed.
func drop(list []string, ticker string) ([]string, bool) {
	t := api.NormalizeTicker(ticker)
	out := list[:0:0]
	removed := false
	for _, have := range list {
		if have == t {
			removed = true
			continue
		}
		out = append(out, have)
	}
	return out, removed
}
