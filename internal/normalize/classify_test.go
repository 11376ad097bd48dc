package normalize

import (
	"testing"

	"quant-dashboard/internal/domain"
)

func TestClassify_GBlastFilenameWithDirection(t *testing.T) {
	strategy, position := Classify("live_trades_X.csv", RawRow{"direction": "BUY_PUT"})
	if strategy != domain.StrategyGBlast {
		t.Errorf("expected GBlast, got %s", strategy)
	}
	if position != "SHORT" {
		t.Errorf("expected SHORT, got %s", position)
	}
}

func TestClassify_GBlastBuyCall(t *testing.T) {
	strategy, position := Classify("GBLAST_today.csv", RawRow{"direction": "BUY_CALL"})
	if strategy != domain.StrategyGBlast {
		t.Errorf("expected GBlast, got %s", strategy)
	}
	if position != "LONG" {
		t.Errorf("expected LONG, got %s", position)
	}
}

func TestClassify_GBlastSignalTypeFallback(t *testing.T) {
	strategy, position := Classify("g-blast.csv", RawRow{"signal_type": "BEARISH"})
	if strategy != domain.StrategyGBlast {
		t.Errorf("expected GBlast, got %s", strategy)
	}
	if position != "SHORT" {
		t.Errorf("expected SHORT, got %s", position)
	}
}

func TestClassify_GBlastUnresolvedKeepsRawPosition(t *testing.T) {
	strategy, position := Classify("g_blast.csv", RawRow{"position_type": "options", "direction": "STRADDLE"})
	if strategy != domain.StrategyGBlast {
		t.Errorf("expected GBlast, got %s", strategy)
	}
	if position != "OPTIONS" {
		t.Errorf("expected OPTIONS, got %s", position)
	}
}

func TestClassify_ShortIsITrack(t *testing.T) {
	strategy, position := Classify("trades_20251223.csv", RawRow{"position_type": "short"})
	if strategy != domain.StrategyITrack {
		t.Errorf("expected iTrack, got %s", strategy)
	}
	if position != "SHORT" {
		t.Errorf("expected SHORT, got %s", position)
	}
}

func TestClassify_LongIsTrendFlo(t *testing.T) {
	strategy, _ := Classify("trades_20251223.csv", RawRow{"position_type": "LONG"})
	if strategy != domain.StrategyTrendFlo {
		t.Errorf("expected TrendFlo, got %s", strategy)
	}
}

func TestClassify_Unknown(t *testing.T) {
	strategy, _ := Classify("trades.csv", RawRow{"position_type": "SPREAD"})
	if strategy != domain.StrategyUnknown {
		t.Errorf("expected Unknown, got %s", strategy)
	}
}

func TestClassify_FilenameCaseInsensitive(t *testing.T) {
	strategy, _ := Classify("Live_Trades_20251231.csv", RawRow{})
	if strategy != domain.StrategyGBlast {
		t.Errorf("expected GBlast, got %s", strategy)
	}
}
