package chart

import (
	"errors"
	"io"

	"github.com/danijuhaeni22/idx-signal-web/internal/model"
)

// Data is the full series set of one chart: candles, the two moving-average
// lines and the volume histogram. Setting data replaces all series; there
// are no incremental updates.
type Data struct {
	Ticker string
	Bars   []model.Bar
	MA20   []model.Point
	MA50   []model.Point
}

// Build assembles chart data for a ticker.
func Build(ticker string, bars []model.Bar, ma20, ma50 []model.Point) *Data {
	return &Data{Ticker: ticker, Bars: bars, MA20: ma20, MA50: ma50}
}

// Renderer draws a full chart to w. Implementations are probed once via
// Available and the first usable one wins.
type Renderer interface {
	Name() string
	Available() bool
	Render(d *Data, w io.Writer) error
}

// ErrNoRenderer is returned when no probe succeeds; chart construction must
// fail loudly instead of silently rendering nothing.
var ErrNoRenderer = errors.New("chart: no usable renderer among the configured strategies")

// Select probes the strategies in order and returns the first available.
func Select(strategies ...Renderer) (Renderer, error) {
	for _, s := range strategies {
		if s.Available() {
			return s, nil
		}
	}
	return nil, ErrNoRenderer
}
