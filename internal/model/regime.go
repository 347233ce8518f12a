package model

// Regime status values emitted by /api/market-regime.
const (
	RegimeRiskOn     = "RISK_ON"
	RegimeRiskOff    = "RISK_OFF"
	RegimeNeutral    = "NEUTRAL"
	RegimeNoTradeDay = "NO_TRADE_DAY"
	RegimeUnknown    = "UNKNOWN"
)

// RegimeReading is the market-wide snapshot from /api/market-regime.
// Numeric fields and AsOf are pointers because the backend emits nulls
// together with status UNKNOWN when index data is unavailable.
type RegimeReading struct {
	Status       string   `json:"status"`
	Close        *float64 `json:"close"`
	MA20         *float64 `json:"ma20"`
	MA50         *float64 `json:"ma50"`
	DayChangePct *float64 `json:"day_change_pct"`
	ATR14Pct     *float64 `json:"atr14_pct"`
	AsOf         *string  `json:"asof"`
	Note         []string `json:"note"`
	Ticker       string   `json:"ticker"`
}
