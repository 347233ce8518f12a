package chart

import (
	"errors"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/danijuhaeni22/idx-signal-web/internal/model"
)

// PNGRenderer draws the chart as a PNG image: close and moving-average
// lines on the primary axis, the volume histogram on the secondary axis.
// It backs the browser dashboard's <img> endpoint and file output, and is
// always available.
type PNGRenderer struct {
	Width  int
	Height int
}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Width: 960, Height: 420}
}

func (r *PNGRenderer) Name() string    { return "png" }
func (r *PNGRenderer) Available() bool { return true }

func (r *PNGRenderer) Render(d *Data, w io.Writer) error {
	if len(d.Bars) == 0 {
		return errors.New("chart: no bars")
	}

	times := make([]time.Time, len(d.Bars))
	closes := make([]float64, len(d.Bars))
	volumes := make([]float64, len(d.Bars))
	for i, b := range d.Bars {
		times[i] = b.Day()
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	series := []gochart.Series{
		gochart.TimeSeries{
			Name:    "Close",
			XValues: times,
			YValues: closes,
			Style:   gochart.Style{StrokeColor: gochart.ColorBlue, StrokeWidth: 1.6},
		},
		gochart.TimeSeries{
			Name:    "Volume",
			YAxis:   gochart.YAxisSecondary,
			XValues: times,
			YValues: volumes,
			Style: gochart.Style{
				StrokeColor: drawing.Color{R: 160, G: 160, B: 160, A: 120},
				StrokeWidth: 1,
			},
		},
	}
	// go-chart rejects empty series; short histories may not cover MA50.
	if len(d.MA20) > 0 {
		series = append(series, maSeries("MA20", d.MA20, gochart.ColorGreen))
	}
	if len(d.MA50) > 0 {
		series = append(series, maSeries("MA50", d.MA50, gochart.ColorRed))
	}

	ch := gochart.Chart{
		Title:  d.Ticker,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 8},
		},
		XAxis:          gochart.XAxis{ValueFormatter: gochart.TimeDateValueFormatter},
		YAxis:          gochart.YAxis{Name: "Price"},
		YAxisSecondary: gochart.YAxis{Name: "Volume"},
		Series:         series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	return ch.Render(gochart.PNG, w)
}

func maSeries(name string, points []model.Point, color drawing.Color) gochart.TimeSeries {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = time.Unix(p.Time, 0).UTC()
		ys[i] = p.Value
	}
	return gochart.TimeSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style:   gochart.Style{StrokeColor: color, StrokeWidth: 1.2},
	}
}
