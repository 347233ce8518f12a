package server

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/danijuhaeni22/idx-signal-web/internal/api"
	"github.com/danijuhaeni22/idx-signal-web/internal/calculator"
	"github.com/danijuhaeni22/idx-signal-web/internal/chart"
	"github.com/danijuhaeni22/idx-signal-web/internal/dashboard"
	"github.com/danijuhaeni22/idx-signal-web/internal/model"
	"github.com/danijuhaeni22/idx-signal-web/internal/view"
)

// Server renders the browser dashboard from the shared controller. Each
// panel catches its own load failure and renders inline; one broken panel
// never takes the page down.
type Server struct {
	Dashboard     *dashboard.Dashboard
	Renderer      chart.Renderer
	DefaultTicker string

	// Health pings the backend; nil disables the passthrough.
	Health func(ctx context.Context) (*model.HealthStatus, error)

	// ChartErr is the renderer construction error, rendered into the
	// chart slot when no renderer could be selected.
	ChartErr string

	tmpl *template.Template
}

// New creates the server around a controller and a chart renderer.
// renderer may be nil when selection failed; chartErr then carries the
// construction error text.
func New(d *dashboard.Dashboard, renderer chart.Renderer, defaultTicker, chartErr string) *Server {
	return &Server{
		Dashboard:     d,
		Renderer:      renderer,
		DefaultTicker: defaultTicker,
		ChartErr:      chartErr,
		tmpl:          template.Must(template.New("dashboard").Parse(pageTemplate)),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/chart.png", s.handleChart).Methods(http.MethodGet)
	r.HandleFunc("/watchlist/add", s.handleWatchAdd).Methods(http.MethodPost)
	r.HandleFunc("/watchlist/remove", s.handleWatchRemove).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	return r
}

type pageData struct {
	Ticker    string
	Regime    view.Panel
	Signal    view.Panel
	ChartOK   bool
	ChartErr  string
	Radar     view.Table
	RadarOK   bool
	RadarErr  string
	RadarAsOf string
	Watchlist []watchEntry
}

// watchEntry carries the stored ticker next to its display form. Forms and
// links must post the stored value: stripping the market suffix there would
// target an entry that does not exist.
type watchEntry struct {
	Ticker  string
	Display string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticker := api.NormalizeTicker(r.URL.Query().Get("ticker"))
	if ticker == "" {
		ticker = s.Dashboard.DefaultTicker(s.DefaultTicker)
	}

	data := pageData{Ticker: ticker, ChartErr: s.ChartErr}

	v, err := s.Dashboard.LoadTicker(ctx, ticker)
	if err != nil {
		log.Printf("[ERROR] load ticker %s: %v", ticker, err)
		data.Regime = view.ErrorPanel("Market Regime", err)
		data.Signal = view.ErrorPanel("Signal "+view.DisplayTicker(ticker), err)
	} else {
		data.Regime = view.RegimePanel(v.Regime)
		data.Signal = view.SignalPanel(v.Ticker, v.Signal, v.Regime.Status)
		data.ChartOK = s.Renderer != nil
	}

	radar := s.Dashboard.CurrentRadar()
	if radar == nil || r.URL.Query().Get("refresh") == "1" {
		rv, err := s.Dashboard.RefreshRadar(ctx)
		if err != nil {
			log.Printf("[ERROR] load radar: %v", err)
			data.RadarErr = err.Error()
		} else {
			radar = rv
		}
	}
	if radar != nil {
		data.Radar = view.ScreenerTable(radar.Result)
		data.RadarOK = true
		data.RadarAsOf = radar.LoadedAt.Format("15:04:05")
	}

	list, err := s.Dashboard.Store.List()
	if err != nil {
		log.Printf("[WARN] read watchlist: %v", err)
	}
	for _, tk := range list {
		data.Watchlist = append(data.Watchlist, watchEntry{Ticker: tk, Display: view.DisplayTicker(tk)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Printf("[ERROR] render dashboard: %v", err)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if s.Renderer == nil {
		http.Error(w, "chart renderer unavailable: "+s.ChartErr, http.StatusInternalServerError)
		return
	}
	ticker := api.NormalizeTicker(r.URL.Query().Get("ticker"))
	if ticker == "" {
		http.Error(w, "missing ticker", http.StatusBadRequest)
		return
	}

	data, err := s.chartData(r.Context(), ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := s.Renderer.Render(data, w); err != nil {
		log.Printf("[ERROR] render chart %s: %v", ticker, err)
	}
}

// chartData reuses the controller's current view when it matches,
// otherwise fetches bars alone (the chart needs no signal).
func (s *Server) chartData(ctx context.Context, ticker string) (*chart.Data, error) {
	if v := s.Dashboard.CurrentTicker(); v != nil && v.Ticker == ticker {
		return chart.Build(v.Ticker, v.Bars, v.MA20, v.MA50), nil
	}
	bars, err := s.Dashboard.Client.OHLCV(ctx, ticker)
	if err != nil {
		return nil, err
	}
	ma20, err := calculator.MovingAverage(bars, 20)
	if err != nil {
		return nil, err
	}
	ma50, err := calculator.MovingAverage(bars, 50)
	if err != nil {
		return nil, err
	}
	return chart.Build(ticker, bars, ma20, ma50), nil
}

func (s *Server) handleWatchAdd(w http.ResponseWriter, r *http.Request) {
	ticker := api.NormalizeTicker(r.FormValue("ticker"))
	if ticker != "" {
		if err := s.Dashboard.Store.Add(ticker); err != nil {
			log.Printf("[ERROR] watchlist add %s: %v", ticker, err)
		}
	}
	http.Redirect(w, r, "/?ticker="+ticker, http.StatusSeeOther)
}

func (s *Server) handleWatchRemove(w http.ResponseWriter, r *http.Request) {
	ticker := api.NormalizeTicker(r.FormValue("ticker"))
	if ticker != "" {
		if err := s.Dashboard.Store.Remove(ticker); err != nil {
			log.Printf("[ERROR] watchlist remove %s: %v", ticker, err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{"ok": true}
	if s.Health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if hs, err := s.Health(ctx); err != nil {
			out["ok"] = false
			out["backend_error"] = err.Error()
		} else {
			out["backend"] = hs
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
