package stats

import (
	"math"
	"sort"

	"quant-dashboard/internal/domain"
)

// Drawdown walks the cumulative equity curve of a trade sequence and reports
// peak tracking, drawdown periods, and time-underwater metrics. Input order
// does not matter: trades are re-sorted oldest-first before the pass (the
// loader hands out newest-first). Period durations count trades, not
// calendar days.
func Drawdown(trades []domain.Trade) domain.DrawdownMetrics {
	if len(trades) == 0 {
		return domain.DrawdownMetrics{DrawdownHistory: []domain.EquityPoint{}}
	}

	sorted := make([]domain.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortTime().Before(sorted[j].SortTime())
	})

	var (
		cumulativePnL       float64
		peak                float64
		maxDrawdown         float64
		maxDrawdownPercent  float64
		currentDrawdown     float64
		inDrawdown          bool
		drawdownStart       string
		drawdownDays        int
		totalDaysInDrawdown int
		periods             []domain.DrawdownPeriod
	)

	history := make([]domain.EquityPoint, 0, len(sorted))
	for _, trade := range sorted {
		cumulativePnL += trade.NetPnL

		if cumulativePnL > peak {
			peak = cumulativePnL
			if inDrawdown {
				// MaxDD here is the all-time running minimum at closure
				// time, not the minimum within this period's bounds.
				periods = append(periods, domain.DrawdownPeriod{
					Start:    drawdownStart,
					End:      trade.Date,
					Duration: drawdownDays,
					MaxDD:    maxDrawdown,
				})
				inDrawdown = false
				drawdownDays = 0
			}
		}

		drawdown := cumulativePnL - peak
		drawdownPercent := 0.0
		if peak != 0 {
			drawdownPercent = drawdown / peak * 100
		}

		if drawdown < 0 {
			if !inDrawdown {
				inDrawdown = true
				drawdownStart = trade.Date
				drawdownDays = 1
			} else {
				drawdownDays++
			}
			totalDaysInDrawdown++
		}

		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
		if drawdownPercent < maxDrawdownPercent {
			maxDrawdownPercent = drawdownPercent
		}
		currentDrawdown = drawdown

		history = append(history, domain.EquityPoint{
			Date:            trade.Date,
			Equity:          cumulativePnL,
			Peak:            peak,
			Drawdown:        drawdown,
			DrawdownPercent: drawdownPercent,
		})
	}

	// A drawdown still open after the last trade closes on that trade's
	// date.
	if inDrawdown {
		periods = append(periods, domain.DrawdownPeriod{
			Start:    drawdownStart,
			End:      sorted[len(sorted)-1].Date,
			Duration: drawdownDays,
			MaxDD:    maxDrawdown,
		})
	}

	metrics := domain.DrawdownMetrics{
		MaxDrawdown:        math.Abs(maxDrawdown),
		MaxDrawdownPercent: math.Abs(maxDrawdownPercent),
		DrawdownPeriods:    len(periods),
		TimeUnderwater:     float64(totalDaysInDrawdown) / float64(len(sorted)) * 100,
		CurrentDrawdown:    currentDrawdown,
		DrawdownHistory:    history,
		Periods:            periods,
	}

	if len(periods) > 0 {
		totalDuration := 0
		maxDuration := 0
		for _, p := range periods {
			totalDuration += p.Duration
			if p.Duration > maxDuration {
				maxDuration = p.Duration
			}
		}
		metrics.AvgDrawdownDuration = float64(totalDuration) / float64(len(periods))
		metrics.MaxDrawdownDuration = maxDuration
	}
	return metrics
}
