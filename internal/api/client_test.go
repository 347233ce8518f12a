package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/danijuhaeni22/idx-signal-web/internal/state"
)

func newTestClient(t *testing.T, bases ...string) (*Client, string) {
	t.Helper()
	stateFile := filepath.Join(t.TempDir(), "app_state.json")
	r := NewResolver("", bases, stateFile)
	return NewClient(r, "", 260, "LQ45"), stateFile
}

func TestGetJSON_FallsBackToNextBase(t *testing.T) {
	var hitsA atomic.Int64
	srvA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hitsA.Add(1)
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))
	defer srvA.Close()
	srvB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"name":"test","ts":1}`))
	}))
	defer srvB.Close()

	// Only these two candidates: the hardcoded fallback would also fail,
	// but B must short-circuit before it is ever relevant.
	c, stateFile := newTestClient(t, srvA.URL, srvB.URL)

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.GetJSON(context.Background(), "/api/health", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.OK {
		t.Error("expected response from base B")
	}
	if got := c.Resolver.Preferred(); got != srvB.URL {
		t.Errorf("expected remembered base %s, got %s", srvB.URL, got)
	}
	if got := state.Load(stateFile).APIBase; got != srvB.URL {
		t.Errorf("expected persisted base %s, got %s", srvB.URL, got)
	}

	// A second call starts from the remembered base, skipping A entirely.
	if err := c.GetJSON(context.Background(), "/api/health", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hitsA.Load() != 1 {
		t.Errorf("expected base A hit exactly once, got %d", hitsA.Load())
	}
}

func TestGetJSON_AllBasesFail(t *testing.T) {
	srvA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom-a", http.StatusInternalServerError)
	}))
	defer srvA.Close()
	srvB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom-b", http.StatusServiceUnavailable)
	}))
	defer srvB.Close()

	stateFile := filepath.Join(t.TempDir(), "app_state.json")
	// No persistence of a working base can exist; the fallback candidate is
	// replaced by B being last via explicit ordering.
	r := &Resolver{candidates: []string{srvA.URL, srvB.URL}, stateFile: stateFile}
	c := NewClient(r, "", 260, "LQ45")

	var out map[string]any
	err := c.GetJSON(context.Background(), "/api/health", &out)
	if err == nil {
		t.Fatal("expected error when every base fails")
	}

	var re *ResolveError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ResolveError, got %T: %v", err, err)
	}
	if re.LastBase != srvB.URL {
		t.Errorf("expected last base %s, got %s", srvB.URL, re.LastBase)
	}
	if !strings.Contains(err.Error(), srvB.URL) {
		t.Errorf("error message should name the last base: %v", err)
	}
	if !strings.Contains(err.Error(), "boom-b") {
		t.Errorf("error message should carry the last underlying failure: %v", err)
	}
	if c.Resolver.Preferred() != "" {
		t.Error("no base should be remembered after total failure")
	}
}

func TestOHLCV_RequestShape(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.Write([]byte(`{"ticker":"BBCA.JK","bars":[{"time":1,"open":1,"high":2,"low":0.5,"close":1.5,"volume":100}]}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL)
	bars, err := c.OHLCV(context.Background(), "  bbca ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "/api/ohlcv?ticker=BBCA&days=260"; gotPath != want {
		t.Errorf("expected request %s, got %s", want, gotPath)
	}
	if len(bars) != 1 || bars[0].Close != 1.5 {
		t.Errorf("unexpected bars: %+v", bars)
	}
}

func TestGetJSON_DecodeFailureDoesNotFallBack(t *testing.T) {
	srvA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srvA.Close()
	srvB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srvB.Close()

	c, _ := newTestClient(t, srvA.URL, srvB.URL)

	var out map[string]any
	err := c.GetJSON(context.Background(), "/api/health", &out)
	if err == nil {
		t.Fatal("expected decode error")
	}
	var re *ResolveError
	if errors.As(err, &re) {
		t.Fatalf("a 2xx body that fails to parse must propagate, not aggregate: %v", err)
	}
}

func TestNormalizeTicker(t *testing.T) {
	tests := []struct{ in, want string }{
		{" bbca ", "BBCA"},
		{"BBRI", "BBRI"},
		{"adro.jk", "ADRO.JK"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTicker(tt.in); got != tt.want {
			t.Errorf("NormalizeTicker(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestResolver_OrderAndDedup(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "app_state.json")
	if err := state.Save(stateFile, &state.AppState{APIBase: "http://remembered:9/"}); err != nil {
		t.Fatal(err)
	}

	r := NewResolver("http://override:1/", []string{"http://override:1", "http://cfg:2/"}, stateFile)
	got := r.Candidates()
	want := []string{"http://override:1", "http://remembered:9", "http://cfg:2", FallbackBase}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	// Remembering a base moves it to the front of subsequent attempts.
	r.Remember("http://cfg:2")
	got = r.Candidates()
	if got[0] != "http://cfg:2" {
		t.Errorf("expected remembered base first, got %v", got)
	}
	if len(got) != len(want) {
		t.Errorf("remembering must not duplicate candidates: %v", got)
	}
}
