// Package normalize reconciles the heterogeneous trade-log CSV schemas into
// the canonical Trade record. Every strategy's log writer spells its columns
// differently; this package owns the alias table, the date derivation rules,
// and the filename-based strategy classification.
package normalize

import (
	"fmt"
	"path/filepath"
	"strconv"

	"quant-dashboard/internal/domain"
)

// FieldError records a numeric column whose non-empty value failed to parse.
// The field is zeroed and the row is still normalized; callers decide whether
// to log or surface it.
type FieldError struct {
	Field string
	Value string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q as a number", e.Field, e.Value)
}

// Normalize maps one raw CSV row plus its source filename into a canonical
// Trade. It never fails: a malformed row yields a Trade that does not pass
// Valid() and is dropped downstream.
func Normalize(row RawRow, filename string) (domain.Trade, []FieldError) {
	entryTime := row.lookup("entry_time")
	exitTime := row.lookup("exit_time")

	var date string
	if entryTime != "" {
		date = deriveDate(entryTime, filename)
	} else {
		date = deriveDate(exitTime, filename)
	}

	strategy, position := Classify(filename, row)

	symbol := row.lookup("symbol")
	if strategy == domain.StrategyGBlast && symbol == "" {
		symbol = gblastSymbol(row)
	}

	var fieldErrs []FieldError
	number := func(field string) float64 {
		raw := row.lookup(field)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: field, Value: raw})
			return 0
		}
		return v
	}

	trade := domain.Trade{
		Symbol:       symbol,
		EntryTime:    entryTime,
		ExitTime:     exitTime,
		Date:         date,
		EntryPrice:   number("entry_price"),
		ExitPrice:    number("exit_price"),
		PositionType: position,
		NetPnL:       number("net_pnl"),
		ProfitPct:    number("profit_pct"),
		ExitReason:   row.lookup("exit_reason"),
		Quantity:     number("quantity"),
		Strategy:     strategy,
		SourceFile:   filepath.Base(filename),
	}
	return trade, fieldErrs
}

// gblastSymbol synthesizes an option identifier when the G-Blast log omits a
// symbol column: "NIFTY {strike} {option_type}", or bare "NIFTY".
func gblastSymbol(row RawRow) string {
	strike := row.lookup("entry_strike")
	optionType := row.lookup("option_type")
	if strike != "" && optionType != "" {
		return "NIFTY " + strike + " " + optionType
	}
	return "NIFTY"
}
