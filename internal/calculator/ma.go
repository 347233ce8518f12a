package calculator

import (
	"errors"

	"github.com/danijuhaeni22/idx-signal-web/internal/model"
)

// MovingAverage computes the simple moving average of closes over a trailing
// window of size period. It yields one point per bar index >= period-1; the
// first period-1 bars have no full window and produce nothing, so a series
// shorter than the period yields an empty result.
func MovingAverage(bars []model.Bar, period int) ([]model.Point, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(bars) < period {
		return nil, nil
	}

	points := make([]model.Point, 0, len(bars)-period+1)
	for i := period - 1; i < len(bars); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += bars[j].Close
		}
		points = append(points, model.Point{
			Time:  bars[i].Time,
			Value: sum / float64(period),
		})
	}
	return points, nil
}

// Closes extracts the close series from bars.
func Closes(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volume series from bars.
func Volumes(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}
