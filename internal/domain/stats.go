package domain

// EquityPoint is one step of the cumulative equity curve, in chronological
// order.
type EquityPoint struct {
	Date            string  `json:"date"`
	Equity          float64 `json:"equity"`
	Peak            float64 `json:"peak"`
	Drawdown        float64 `json:"drawdown"`        // <= 0
	DrawdownPercent float64 `json:"drawdownPercent"` // <= 0
}

// DrawdownPeriod is a maximal run of trades during which equity stayed below
// its prior peak. Duration counts trades, not calendar days.
type DrawdownPeriod struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Duration int     `json:"duration"`
	MaxDD    float64 `json:"maxDD"`
}

// DrawdownMetrics is the drawdown engine output. MaxDrawdown and
// MaxDrawdownPercent are reported as absolute values for display;
// CurrentDrawdown keeps its sign.
type DrawdownMetrics struct {
	MaxDrawdown         float64       `json:"maxDrawdown"`
	MaxDrawdownPercent  float64       `json:"maxDrawdownPercent"`
	DrawdownPeriods     int           `json:"drawdownPeriods"`
	AvgDrawdownDuration float64       `json:"avgDrawdownDuration"`
	MaxDrawdownDuration int           `json:"maxDrawdownDuration"`
	TimeUnderwater      float64       `json:"timeUnderwater"`
	CurrentDrawdown     float64       `json:"currentDrawdown"`
	DrawdownHistory     []EquityPoint `json:"drawdownHistory"`

	// Periods holds the closed drawdown periods backing the counts above.
	// Not part of the serialized payload.
	Periods []DrawdownPeriod `json:"-"`
}

// Stats aggregates win/loss performance for one trade partition. The
// embedded drawdown metrics serialize flat, matching the dashboard payload.
type Stats struct {
	TotalTrades    int     `json:"totalTrades"`
	TotalPnL       float64 `json:"totalPnL"`
	Winners        int     `json:"winners"`
	Losers         int     `json:"losers"`
	Breakeven      int     `json:"breakeven"`
	WinRate        float64 `json:"winRate"`
	AvgProfit      float64 `json:"avgProfit"`
	AvgLoss        float64 `json:"avgLoss"`
	AvgPnLPerTrade float64 `json:"avgPnLPerTrade"`

	DrawdownMetrics
}
