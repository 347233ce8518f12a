package dashboard

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/danijuhaeni22/idx-signal-web/internal/model"
	"github.com/danijuhaeni22/idx-signal-web/internal/state"
	"github.com/danijuhaeni22/idx-signal-web/internal/watchlist"
)

// fakeFetcher returns canned payloads and records call order. An optional
// block channel stalls signal fetches for the named ticker.
type fakeFetcher struct {
	mu        sync.Mutex
	calls     []string
	bars      []model.Bar
	blockFor  string
	blocked   chan struct{} // closed when the blocked fetch is entered
	release   chan struct{}
}

func newFakeFetcher(barCount int) *fakeFetcher {
	bars := make([]model.Bar, barCount)
	for i := range bars {
		bars[i] = model.Bar{Time: int64(i + 1), Open: 10, High: 11, Low: 9, Close: 10 + float64(i%3), Volume: 1000}
	}
	return &fakeFetcher{bars: bars}
}

func (f *fakeFetcher) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeFetcher) MarketRegime(ctx context.Context) (*model.RegimeReading, error) {
	f.record("regime")
	return &model.RegimeReading{Status: model.RegimeRiskOn, Ticker: "^JKSE"}, nil
}

func (f *fakeFetcher) OHLCV(ctx context.Context, ticker string) ([]model.Bar, error) {
	f.record("ohlcv:" + ticker)
	return f.bars, nil
}

func (f *fakeFetcher) TickerSignal(ctx context.Context, ticker string) (*model.Signal, error) {
	f.record("signal:" + ticker)
	if ticker == f.blockFor {
		close(f.blocked)
		<-f.release
	}
	return &model.Signal{Setup: model.SetupNone, Close: 100, AsOf: "2026-08-28"}, nil
}

func (f *fakeFetcher) Screener(ctx context.Context) (*model.ScreenerResult, error) {
	f.record("screener")
	return &model.ScreenerResult{
		Universe: "LQ45",
		Count:    1,
		Top:      []model.ScreenerRow{{Ticker: "BBCA.JK", Setup: "BREAKOUT", Score: 6}},
	}, nil
}

func newTestDashboard(t *testing.T, f Fetcher) *Dashboard {
	t.Helper()
	dir := t.TempDir()
	store := watchlist.NewJSONStore(filepath.Join(dir, "watchlist.json"))
	return New(f, store, filepath.Join(dir, "app_state.json"))
}

func TestLoadTicker_PipelineOrder(t *testing.T) {
	f := newFakeFetcher(60)
	d := newTestDashboard(t, f)

	v, err := d.LoadTicker(context.Background(), " bbca ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"regime", "ohlcv:BBCA", "signal:BBCA"}
	if len(f.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, f.calls)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("call %d: expected %s, got %s (all: %v)", i, want[i], f.calls[i], f.calls)
		}
	}

	if v.Ticker != "BBCA" {
		t.Errorf("expected normalized ticker BBCA, got %s", v.Ticker)
	}
	if len(v.MA20) != 41 || len(v.MA50) != 11 {
		t.Errorf("expected 41/11 MA points for 60 bars, got %d/%d", len(v.MA20), len(v.MA50))
	}
	if cur := d.CurrentTicker(); cur != v {
		t.Error("completed load should be installed as current")
	}
}

func TestLoadTicker_RemembersLastTicker(t *testing.T) {
	f := newFakeFetcher(60)
	dir := t.TempDir()
	stateFile := filepath.Join(dir, "app_state.json")
	d := New(f, watchlist.NewJSONStore(filepath.Join(dir, "wl.json")), stateFile)

	if _, err := d.LoadTicker(context.Background(), "adro"); err != nil {
		t.Fatal(err)
	}
	if got := state.Load(stateFile).LastTicker; got != "ADRO" {
		t.Errorf("expected persisted last ticker ADRO, got %q", got)
	}
	if got := d.DefaultTicker("BBRI"); got != "ADRO" {
		t.Errorf("expected default ticker ADRO, got %q", got)
	}
}

func TestLoadTicker_StaleLoadIsDiscarded(t *testing.T) {
	f := newFakeFetcher(60)
	f.blockFor = "SLOW"
	f.blocked = make(chan struct{})
	f.release = make(chan struct{})
	d := newTestDashboard(t, f)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := d.LoadTicker(context.Background(), "SLOW"); err != nil {
			t.Errorf("slow load: %v", err)
		}
	}()

	// Wait until the slow load is parked inside its signal fetch, then run
	// a newer load to completion.
	<-f.blocked
	if _, err := d.LoadTicker(context.Background(), "FAST"); err != nil {
		t.Fatalf("fast load: %v", err)
	}

	close(f.release)
	<-done

	cur := d.CurrentTicker()
	if cur == nil || cur.Ticker != "FAST" {
		t.Fatalf("stale SLOW load must not overwrite the newer FAST view, current=%+v", cur)
	}
	if got := d.DefaultTicker("BBRI"); got != "FAST" {
		t.Errorf("stale load must not be remembered, got %q", got)
	}
}

func TestRefreshRadar_InstallsCache(t *testing.T) {
	f := newFakeFetcher(60)
	d := newTestDashboard(t, f)

	if d.CurrentRadar() != nil {
		t.Fatal("expected empty radar cache before refresh")
	}
	v, err := d.RefreshRadar(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.CurrentRadar() != v {
		t.Error("refresh should install the radar view")
	}
	if v.Result.Top[0].Ticker != "BBCA.JK" {
		t.Errorf("unexpected radar payload: %+v", v.Result)
	}
}
