package domain

import (
	"strings"
	"time"
)

// Strategy identifies which trading system produced a trade. The trade logs
// never carry it as a column; it is inferred from the source filename and the
// position direction.
type Strategy string

const (
	StrategyITrack   Strategy = "iTrack"
	StrategyTrendFlo Strategy = "TrendFlo"
	StrategyGBlast   Strategy = "GBlast"
	StrategyUnknown  Strategy = "Unknown"
)

// Strategies lists every named strategy in the order partitions are reported.
func Strategies() []Strategy {
	return []Strategy{StrategyITrack, StrategyTrendFlo, StrategyGBlast}
}

// Trade is one normalized buy/sell round trip. JSON keys mirror the payload
// the dashboard frontend consumes.
type Trade struct {
	Symbol       string   `json:"symbol"`
	EntryTime    string   `json:"entry_time"`
	ExitTime     string   `json:"exit_time"`
	Date         string   `json:"date"` // YYYY-MM-DD, empty when underivable
	EntryPrice   float64  `json:"entry_price"`
	ExitPrice    float64  `json:"exit_price"`
	PositionType string   `json:"position_type"`
	NetPnL       float64  `json:"net_pnl"`
	ProfitPct    float64  `json:"profit_pct"`
	ExitReason   string   `json:"exit_reason"`
	Quantity     float64  `json:"quantity"`
	Strategy     Strategy `json:"strategy"`
	SourceFile   string   `json:"source_file"`
}

// Valid reports whether the trade carries the minimum fields the analytics
// engines rely on. Invalid trades never leave the loader.
func (t Trade) Valid() bool {
	return t.Symbol != "" && t.PositionType != "" && t.Date != ""
}

// SortTime is the chronological key shared by the loader (newest first) and
// the drawdown engine (oldest first): the trade date combined with the clock
// portion of entry_time, defaulting to midnight. entry_time sometimes embeds
// its own date ("2025-12-04T15:31:00"); only the clock after the separator
// is used. An unparseable clock degrades to the date at midnight.
func (t Trade) SortTime() time.Time {
	clock := t.EntryTime
	if clock == "" {
		clock = "00:00:00"
	}
	if i := strings.IndexAny(clock, "T "); i >= 0 {
		clock = clock[i+1:]
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if ts, err := time.Parse(layout, t.Date+" "+clock); err == nil {
			return ts
		}
	}
	ts, _ := time.Parse("2006-01-02", t.Date)
	return ts
}
