package view

import (
	"fmt"

	"github.com/danijuhaeni22/idx-signal-web/internal/model"
)

// Row is one label/value line of a panel.
type Row struct {
	Label string
	Value string
}

// Panel is a rendering-target-independent description of one dashboard
// panel: a title, a status badge, label/value rows, free-form notes and a
// footer line.
type Panel struct {
	Title  string
	Badge  string
	Rows   []Row
	Notes  []string
	Footer string
	Err    bool
}

// Table is a rendering-target-independent table. Each row's first cell is
// the ticker that a click/selection should load, already suffix-stripped.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Empty   string // shown when Rows is empty
}

const (
	noTradeBadgePrefix = "NO-TRADE "
	noTradeFooter      = "Regime is NO_TRADE_DAY: volatile risk-off tape, prefer sitting out new entries."
	planFooter         = "Plan prices are indicative; size the position off the entry-SL distance."
)

// RegimePanel maps the market regime reading into a panel.
func RegimePanel(r *model.RegimeReading) Panel {
	return Panel{
		Title: "Market Regime",
		Badge: r.Status,
		Rows: []Row{
			{"Index", r.Ticker},
			{"As of", OptText(r.AsOf)},
			{"Close", OptNumber(r.Close)},
			{"MA20", OptNumber(r.MA20)},
			{"MA50", OptNumber(r.MA50)},
			{"Day change", Percent(r.DayChangePct)},
			{"ATR14", Percent(r.ATR14Pct)},
		},
		Notes: r.Note,
	}
}

// SignalPanel maps a ticker's trade plan into a panel. A NO_TRADE_DAY
// regime changes the badge prefix and footer guidance but leaves every
// numeric plan row exactly as fetched.
func SignalPanel(ticker string, s *model.Signal, regimeStatus string) Panel {
	badge := s.Setup
	footer := planFooter
	if regimeStatus == model.RegimeNoTradeDay {
		badge = noTradeBadgePrefix + badge
		footer = noTradeFooter
	}

	rows := []Row{
		{"As of", s.AsOf},
		{"Close", Number(s.Close)},
		{"Trend OK", YesNo(s.TrendOK)},
		{"Support", Number(s.Support)},
		{"Resistance", Number(s.Resistance)},
		{"MA20", Number(s.MA20)},
		{"MA50", Number(s.MA50)},
		{"Entry", OptNumber(s.Entry)},
		{"Stop loss", OptNumber(s.SL)},
		{"Target 1", OptNumber(s.TP1)},
		{"Target 2", OptNumber(s.TP2)},
	}
	if s.RR != nil {
		rows = append(rows,
			Row{"R:R target 1", Ratio(s.RR.RMultipleTP1)},
			Row{"R:R target 2", Ratio(s.RR.RMultipleTP2)},
		)
	}

	return Panel{
		Title:  "Signal " + DisplayTicker(ticker),
		Badge:  badge,
		Rows:   rows,
		Notes:  s.Reason,
		Footer: footer,
	}
}

// ScreenerTable maps the ranked screener result into a table. Rank is the
// 1-based position in server order; tickers are shown without the market
// suffix.
func ScreenerTable(res *model.ScreenerResult) Table {
	t := Table{
		Title:   fmt.Sprintf("Radar %s", res.Universe),
		Headers: []string{"Ticker", "Rank", "Setup", "Score", "Close"},
		Empty:   "no candidates",
	}
	for i, row := range res.Top {
		t.Rows = append(t.Rows, []string{
			DisplayTicker(row.Ticker),
			fmt.Sprintf("%d", i+1),
			row.Setup,
			fmt.Sprintf("%.0f", row.Score),
			Number(row.Close),
		})
	}
	return t
}

// WatchlistTable maps the stored tickers into a table.
func WatchlistTable(tickers []string) Table {
	t := Table{
		Title:   "Watchlist",
		Headers: []string{"Ticker"},
		Empty:   "watchlist is empty",
	}
	for _, tk := range tickers {
		t.Rows = append(t.Rows, []string{DisplayTicker(tk)})
	}
	return t
}

// ErrorPanel renders a failed panel load inline instead of failing the
// whole dashboard.
func ErrorPanel(title string, err error) Panel {
	return Panel{
		Title:  title,
		Badge:  "ERROR",
		Footer: err.Error(),
		Err:    true,
	}
}
