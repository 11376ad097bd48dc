package stats

import (
	"math"
	"reflect"
	"testing"

	"quant-dashboard/internal/domain"
)

func tradeOn(date string, pnl float64) domain.Trade {
	return domain.Trade{
		Symbol:       "NIFTY",
		PositionType: "LONG",
		Date:         date,
		NetPnL:       pnl,
		Strategy:     domain.StrategyTrendFlo,
	}
}

func TestCompute_Aggregation(t *testing.T) {
	trades := []domain.Trade{
		tradeOn("2025-01-01", 10),
		tradeOn("2025-01-02", -5),
		tradeOn("2025-01-03", 0),
	}

	s := Compute(trades)

	if s.TotalTrades != 3 {
		t.Errorf("totalTrades: expected 3, got %d", s.TotalTrades)
	}
	if s.TotalPnL != 5 {
		t.Errorf("totalPnL: expected 5, got %f", s.TotalPnL)
	}
	if s.Winners != 1 || s.Losers != 1 || s.Breakeven != 1 {
		t.Errorf("expected 1/1/1, got %d/%d/%d", s.Winners, s.Losers, s.Breakeven)
	}
	if math.Abs(s.WinRate-33.3333) > 0.001 {
		t.Errorf("winRate: expected ~33.33, got %f", s.WinRate)
	}
	if s.AvgProfit != 10 {
		t.Errorf("avgProfit: expected 10, got %f", s.AvgProfit)
	}
	if s.AvgLoss != -5 {
		t.Errorf("avgLoss: expected -5, got %f", s.AvgLoss)
	}
	if math.Abs(s.AvgPnLPerTrade-5.0/3.0) > 1e-9 {
		t.Errorf("avgPnLPerTrade: expected 1.67, got %f", s.AvgPnLPerTrade)
	}
}

func TestCompute_ZeroTrades(t *testing.T) {
	s := Compute(nil)

	if s.TotalTrades != 0 || s.TotalPnL != 0 || s.WinRate != 0 ||
		s.AvgProfit != 0 || s.AvgLoss != 0 || s.AvgPnLPerTrade != 0 {
		t.Errorf("expected all-zero stats, got %+v", s)
	}
	if s.MaxDrawdown != 0 || s.TimeUnderwater != 0 || s.CurrentDrawdown != 0 {
		t.Errorf("expected zero drawdown defaults, got %+v", s.DrawdownMetrics)
	}
	if s.DrawdownHistory == nil || len(s.DrawdownHistory) != 0 {
		t.Errorf("expected empty (non-nil) history, got %v", s.DrawdownHistory)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	trades := []domain.Trade{
		tradeOn("2025-01-03", -20),
		tradeOn("2025-01-01", 100),
		tradeOn("2025-01-02", -50),
	}

	first := Compute(trades)
	second := Compute(trades)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results on repeated computation")
	}
}

func TestPartition(t *testing.T) {
	itrack := tradeOn("2025-01-01", 10)
	itrack.PositionType = "SHORT"
	itrack.Strategy = domain.StrategyITrack

	trades := []domain.Trade{
		itrack,
		tradeOn("2025-01-02", -5),
		tradeOn("2025-01-03", 20),
	}

	partition := Partition(trades)

	if len(partition) != 4 {
		t.Fatalf("expected 4 partitions, got %d", len(partition))
	}
	if partition["ALL"].TotalTrades != 3 {
		t.Errorf("ALL: expected 3 trades, got %d", partition["ALL"].TotalTrades)
	}
	if partition["iTrack"].TotalTrades != 1 {
		t.Errorf("iTrack: expected 1 trade, got %d", partition["iTrack"].TotalTrades)
	}
	if partition["TrendFlo"].TotalTrades != 2 {
		t.Errorf("TrendFlo: expected 2 trades, got %d", partition["TrendFlo"].TotalTrades)
	}
	if partition["GBlast"].TotalTrades != 0 {
		t.Errorf("GBlast: expected 0 trades, got %d", partition["GBlast"].TotalTrades)
	}
}

func TestFilter(t *testing.T) {
	gblast := tradeOn("2025-01-01", 1)
	gblast.Strategy = domain.StrategyGBlast

	filtered := Filter([]domain.Trade{gblast, tradeOn("2025-01-02", 2)}, domain.StrategyGBlast)
	if len(filtered) != 1 || filtered[0].Strategy != domain.StrategyGBlast {
		t.Errorf("unexpected filter result: %+v", filtered)
	}
}
