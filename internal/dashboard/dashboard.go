package dashboard

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/danijuhaeni22/idx-signal-web/internal/api"
	"github.com/danijuhaeni22/idx-signal-web/internal/calculator"
	"github.com/danijuhaeni22/idx-signal-web/internal/model"
	"github.com/danijuhaeni22/idx-signal-web/internal/state"
	"github.com/danijuhaeni22/idx-signal-web/internal/watchlist"
)

// Fetcher is the slice of the API client the controller needs.
type Fetcher interface {
	MarketRegime(ctx context.Context) (*model.RegimeReading, error)
	OHLCV(ctx context.Context, ticker string) ([]model.Bar, error)
	TickerSignal(ctx context.Context, ticker string) (*model.Signal, error)
	Screener(ctx context.Context) (*model.ScreenerResult, error)
}

// TickerView is everything one ticker load produces, in dependency order:
// the regime feeds the signal panel, the bars feed the averages and chart.
type TickerView struct {
	Ticker   string
	Regime   *model.RegimeReading
	Bars     []model.Bar
	MA20     []model.Point
	MA50     []model.Point
	Signal   *model.Signal
	LoadedAt time.Time
}

// RadarView is a loaded screener result.
type RadarView struct {
	Result   *model.ScreenerResult
	LoadedAt time.Time
}

// Dashboard owns all mutable dashboard state: the API client, the
// watchlist store and the last loaded views. Concurrent loads are ordered
// by a generation counter; a load that finishes after a newer one started
// is discarded instead of overwriting the fresher view.
type Dashboard struct {
	Client Fetcher
	Store  watchlist.Store

	stateFile string

	mu        sync.Mutex
	tickerGen uint64
	radarGen  uint64
	ticker    *TickerView
	radar     *RadarView
}

// New creates a controller. stateFile may be empty to disable last-ticker
// persistence.
func New(client Fetcher, store watchlist.Store, stateFile string) *Dashboard {
	return &Dashboard{Client: client, Store: store, stateFile: stateFile}
}

// DefaultTicker returns the last successfully viewed ticker from the state
// file, or fallback when none is recorded.
func (d *Dashboard) DefaultTicker(fallback string) string {
	if d.stateFile != "" {
		if t := state.Load(d.stateFile).LastTicker; t != "" {
			return t
		}
	}
	return api.NormalizeTicker(fallback)
}

// LoadTicker runs the full ticker pipeline: regime, bars, moving averages,
// signal. The returned view is installed as the current one only if no
// newer load started in the meantime.
func (d *Dashboard) LoadTicker(ctx context.Context, ticker string) (*TickerView, error) {
	ticker = api.NormalizeTicker(ticker)

	d.mu.Lock()
	d.tickerGen++
	gen := d.tickerGen
	d.mu.Unlock()

	regime, err := d.Client.MarketRegime(ctx)
	if err != nil {
		return nil, fmt.Errorf("market regime: %w", err)
	}
	bars, err := d.Client.OHLCV(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("ohlcv %s: %w", ticker, err)
	}
	ma20, err := calculator.MovingAverage(bars, 20)
	if err != nil {
		return nil, fmt.Errorf("ma20: %w", err)
	}
	ma50, err := calculator.MovingAverage(bars, 50)
	if err != nil {
		return nil, fmt.Errorf("ma50: %w", err)
	}
	signal, err := d.Client.TickerSignal(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("signal %s: %w", ticker, err)
	}

	v := &TickerView{
		Ticker:   ticker,
		Regime:   regime,
		Bars:     bars,
		MA20:     ma20,
		MA50:     ma50,
		Signal:   signal,
		LoadedAt: time.Now(),
	}

	d.mu.Lock()
	current := gen == d.tickerGen
	if current {
		d.ticker = v
	}
	d.mu.Unlock()

	if !current {
		log.Printf("[INFO] discarding stale load for %s (newer load in flight)", ticker)
		return v, nil
	}

	d.rememberTicker(ticker)
	return v, nil
}

// RefreshRadar fetches the screener and installs it under the same
// generation policy.
func (d *Dashboard) RefreshRadar(ctx context.Context) (*RadarView, error) {
	d.mu.Lock()
	d.radarGen++
	gen := d.radarGen
	d.mu.Unlock()

	res, err := d.Client.Screener(ctx)
	if err != nil {
		return nil, fmt.Errorf("screener: %w", err)
	}
	v := &RadarView{Result: res, LoadedAt: time.Now()}

	d.mu.Lock()
	if gen == d.radarGen {
		d.radar = v
	}
	d.mu.Unlock()
	return v, nil
}

// CurrentTicker returns the last installed ticker view, or nil.
func (d *Dashboard) CurrentTicker() *TickerView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticker
}

// CurrentRadar returns the last installed radar view, or nil.
func (d *Dashboard) CurrentRadar() *RadarView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.radar
}

func (d *Dashboard) rememberTicker(ticker string) {
	if d.stateFile == "" {
		return
	}
	st := state.Load(d.stateFile)
	if st.LastTicker == ticker {
		return
	}
	st.LastTicker = ticker
	if err := state.Save(d.stateFile, st); err != nil {
		log.Printf("[WARN] persist last ticker: %v", err)
	}
}
