// Package stats computes win/loss aggregates and the drawdown/equity-curve
// analysis over normalized trade lists. All functions are pure: every call
// recomputes from its input and no state is shared between invocations.
package stats

import "quant-dashboard/internal/domain"

// Compute aggregates performance statistics for a trade partition,
// composing the drawdown metrics into the same result. A zero-trade input
// is a normal case and yields all-zero values.
func Compute(trades []domain.Trade) domain.Stats {
	s := domain.Stats{TotalTrades: len(trades)}
	s.DrawdownMetrics = Drawdown(trades)
	if len(trades) == 0 {
		return s
	}

	var winSum, lossSum float64
	for _, t := range trades {
		s.TotalPnL += t.NetPnL
		switch {
		case t.NetPnL > 0:
			s.Winners++
			winSum += t.NetPnL
		case t.NetPnL < 0:
			s.Losers++
			lossSum += t.NetPnL
		default:
			s.Breakeven++
		}
	}

	s.WinRate = float64(s.Winners) / float64(s.TotalTrades) * 100
	if s.Winners > 0 {
		s.AvgProfit = winSum / float64(s.Winners)
	}
	if s.Losers > 0 {
		s.AvgLoss = lossSum / float64(s.Losers)
	}
	s.AvgPnLPerTrade = s.TotalPnL / float64(s.TotalTrades)
	return s
}

// Partition computes the overall stats plus one independent computation per
// named strategy, keyed "ALL", "iTrack", "TrendFlo", "GBlast".
func Partition(trades []domain.Trade) map[string]domain.Stats {
	out := map[string]domain.Stats{"ALL": Compute(trades)}
	for _, strat := range domain.Strategies() {
		var subset []domain.Trade
		for _, t := range trades {
			if t.Strategy == strat {
				subset = append(subset, t)
			}
		}
		out[string(strat)] = Compute(subset)
	}
	return out
}

// Filter returns the trades belonging to one strategy.
func Filter(trades []domain.Trade, strategy domain.Strategy) []domain.Trade {
	filtered := []domain.Trade{}
	for _, t := range trades {
		if t.Strategy == strategy {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
