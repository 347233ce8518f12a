package model

import "time"

// Bar is one trading day's OHLCV candle as served by /api/ohlcv.
// Time is a unix timestamp in seconds; bars arrive in chronological order
// and are never mutated after decoding.
type Bar struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Day returns the bar's timestamp as a time.Time.
func (b Bar) Day() time.Time {
	return time.Unix(b.Time, 0).UTC()
}

// OHLCVResponse is the /api/ohlcv envelope.
type OHLCVResponse struct {
	Ticker string `json:"ticker"`
	Bars   []Bar  `json:"bars"`
}

// Point is a single {time, value} sample of a derived series such as a
// moving average.
type Point struct {
	Time  int64
	Value float64
}
