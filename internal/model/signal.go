package model

// Setup classifications assigned by the backend signal engine.
const (
	SetupNone     = "NONE"
	SetupBreakout = "BREAKOUT"
	SetupPullback = "PULLBACK_MA20"
)

// RiskReward holds the reward/risk ratios of a trade plan. Nil on the
// enclosing Signal when no setup produced a plan.
type RiskReward struct {
	RiskPerShare float64  `json:"risk_per_share"`
	RMultipleTP1 *float64 `json:"r_multiple_tp1"`
	RMultipleTP2 *float64 `json:"r_multiple_tp2"`
}

// Signal is the per-ticker trade plan from /api/signal. Entry, SL and the
// targets are nil when Setup is NONE.
type Signal struct {
	Setup      string      `json:"setup"`
	TrendOK    bool        `json:"trend_ok"`
	Close      float64     `json:"close"`
	MA20       float64     `json:"ma20"`
	MA50       float64     `json:"ma50"`
	Resistance float64     `json:"resistance"`
	Support    float64     `json:"support"`
	Volume     float64     `json:"volume"`
	VolMA20    float64     `json:"volma20"`
	Entry      *float64    `json:"entry"`
	SL         *float64    `json:"sl"`
	TP1        *float64    `json:"tp1"`
	TP2        *float64    `json:"tp2"`
	RR         *RiskReward `json:"rr"`
	Reason     []string    `json:"reason"`
	AsOf       string      `json:"asof"`
}

// SignalResponse is the /api/signal envelope.
type SignalResponse struct {
	Ticker string `json:"ticker"`
	Signal Signal `json:"signal"`
}
