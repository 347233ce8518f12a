package model

// ScreenerRow is one ranked candidate from /api/screener. Rows arrive
// already sorted by the server; rank is the 1-based presentation index.
type ScreenerRow struct {
	Ticker     string   `json:"ticker"`
	Score      float64  `json:"score"`
	Setup      string   `json:"setup"`
	Close      float64  `json:"close"`
	Resistance float64  `json:"resistance"`
	Support    float64  `json:"support"`
	AsOf       string   `json:"asof"`
	Reason     []string `json:"reason"`
}

// ScreenerResult is the /api/screener envelope.
type ScreenerResult struct {
	Universe     string        `json:"universe"`
	MarketRegime RegimeReading `json:"market_regime"`
	Count        int           `json:"count"`
	Top          []ScreenerRow `json:"top"`
}

// HealthStatus is the /api/health payload.
type HealthStatus struct {
	OK   bool   `json:"ok"`
	Name string `json:"name"`
	TS   int64  `json:"ts"`
}
