package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/danijuhaeni22/idx-signal-web/internal/model"
	"github.com/danijuhaeni22/idx-signal-web/internal/view"
)

const (
	termPriceRows = 14
	termMinWidth  = 40
	termMaxWidth  = 200
)

var volumeBlocks = []rune("▁▂▃▄▅▆▇█")

// TermRenderer draws candles, moving averages and a one-row volume
// histogram as text. Available only when the output is a terminal.
type TermRenderer struct {
	TTY *os.File // probed for terminal-ness and width
}

func NewTermRenderer(tty *os.File) *TermRenderer {
	return &TermRenderer{TTY: tty}
}

func (r *TermRenderer) Name() string { return "term" }

func (r *TermRenderer) Available() bool {
	return r.TTY != nil && term.IsTerminal(int(r.TTY.Fd()))
}

func (r *TermRenderer) width() int {
	if r.TTY == nil {
		return 80
	}
	w, _, err := term.GetSize(int(r.TTY.Fd()))
	if err != nil || w < termMinWidth {
		return 80
	}
	if w > termMaxWidth {
		return termMaxWidth
	}
	return w
}

func (r *TermRenderer) Render(d *Data, w io.Writer) error {
	if len(d.Bars) == 0 {
		return errors.New("chart: no bars")
	}

	// One column per bar, trimmed to the terminal width minus the y-axis
	// margin of 11 cells.
	cols := r.width() - 11
	bars := d.Bars
	if len(bars) > cols {
		bars = bars[len(bars)-cols:]
	}
	cols = len(bars)
	firstTime := bars[0].Time

	lo, hi := priceRange(bars)
	if hi <= lo {
		hi = lo + 1
	}
	row := func(price float64) int {
		// row 0 is the top of the grid; the range covers lows and highs
		// only, so a malformed bar can price outside it
		frac := (price - lo) / (hi - lo)
		rr := int(float64(termPriceRows-1)*frac + 0.5)
		if rr < 0 {
			rr = 0
		}
		if rr > termPriceRows-1 {
			rr = termPriceRows - 1
		}
		return termPriceRows - 1 - rr
	}

	grid := make([][]rune, termPriceRows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for j, b := range bars {
		top, bot := row(b.High), row(b.Low)
		for i := top; i <= bot; i++ {
			grid[i][j] = '│'
		}
		bodyTop, bodyBot := row(b.Close), row(b.Open)
		body := '█'
		if b.Close < b.Open {
			bodyTop, bodyBot = bodyBot, bodyTop
			body = '░'
		}
		for i := bodyTop; i <= bodyBot; i++ {
			grid[i][j] = body
		}
	}

	overlayMA(grid, bars, firstTime, d.MA20, lo, hi, '·')
	overlayMA(grid, bars, firstTime, d.MA50, lo, hi, '+')

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  last %d bars  (█ up candle, ░ down, · MA20, + MA50)\n",
		view.DisplayTicker(d.Ticker), cols))
	for i, line := range grid {
		label := " "
		switch i {
		case 0:
			label = view.Number(hi)
		case termPriceRows - 1:
			label = view.Number(lo)
		}
		b.WriteString(fmt.Sprintf("%10s %s\n", label, string(line)))
	}

	b.WriteString(fmt.Sprintf("%10s %s\n", "vol", volumeRow(bars)))

	_, err := io.WriteString(w, b.String())
	return err
}

func priceRange(bars []model.Bar) (lo, hi float64) {
	lo, hi = bars[0].Low, bars[0].High
	for _, b := range bars {
		if b.Low < lo {
			lo = b.Low
		}
		if b.High > hi {
			hi = b.High
		}
	}
	return lo, hi
}

// overlayMA drops MA markers onto empty grid cells only, so candles keep
// priority.
func overlayMA(grid [][]rune, bars []model.Bar, firstTime int64, points []model.Point, lo, hi float64, marker rune) {
	index := make(map[int64]int, len(bars))
	for j, b := range bars {
		index[b.Time] = j
	}
	for _, p := range points {
		if p.Time < firstTime {
			continue
		}
		j, ok := index[p.Time]
		if !ok || p.Value < lo || p.Value > hi {
			continue
		}
		frac := (p.Value - lo) / (hi - lo)
		i := len(grid) - 1 - int(float64(len(grid)-1)*frac+0.5)
		if grid[i][j] == ' ' {
			grid[i][j] = marker
		}
	}
}

func volumeRow(bars []model.Bar) string {
	maxVol := 0.0
	for _, b := range bars {
		if b.Volume > maxVol {
			maxVol = b.Volume
		}
	}
	cells := make([]rune, len(bars))
	for j, b := range bars {
		if maxVol <= 0 {
			cells[j] = ' '
			continue
		}
		idx := int(b.Volume / maxVol * float64(len(volumeBlocks)-1))
		cells[j] = volumeBlocks[idx]
	}
	return string(cells)
}
