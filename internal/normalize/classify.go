package normalize

import (
	"strings"

	"quant-dashboard/internal/domain"
)

// gblastMarkers are the filename substrings the G-Blast options logger uses.
// The strategy is encoded only in how each writer names its files, so the
// rules live here, in one place, rather than inside the normalization path.
var gblastMarkers = []string{"live_trades", "gblast", "g-blast", "g_blast"}

// Classify determines which strategy produced a row and returns the resolved
// position type. Rules are ordered; first match wins:
//
//  1. G-Blast filename marker: position is re-derived from the option
//     direction (BUY_CALL/BUY_PUT), falling back to signal_type
//     (BULLISH/BEARISH). Unrecognized directions keep the raw position.
//  2. SHORT positions belong to iTrack.
//  3. LONG positions belong to TrendFlo.
//  4. Everything else is Unknown.
func Classify(filename string, row RawRow) (domain.Strategy, string) {
	position := strings.ToUpper(row.lookup("position_type"))

	if isGBlastFile(filename) {
		switch strings.ToUpper(row.lookup("direction")) {
		case "BUY_CALL":
			position = "LONG"
		case "BUY_PUT":
			position = "SHORT"
		default:
			switch strings.ToUpper(row.lookup("signal_type")) {
			case "BULLISH":
				position = "LONG"
			case "BEARISH":
				position = "SHORT"
			}
		}
		return domain.StrategyGBlast, position
	}

	switch position {
	case "SHORT":
		return domain.StrategyITrack, position
	case "LONG":
		return domain.StrategyTrendFlo, position
	}
	return domain.StrategyUnknown, position
}

func isGBlastFile(filename string) bool {
	lower := strings.ToLower(filename)
	for _, marker := range gblastMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
