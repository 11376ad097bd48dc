package normalize

// RawRow is one CSV record keyed by its header names, exactly as read from
// the file. Header casing and spelling vary across the strategies' log
// writers; no type coercion happens before normalization.
type RawRow map[string]string

// columnAliases maps each logical field to the exact header spellings it may
// appear under, tried in order; the first non-empty value wins. Keeping the
// lists in one table documents every header variant the ingested logs have
// ever used.
var columnAliases = map[string][]string{
	"symbol":        {"symbol", "Symbol", "SYMBOL"},
	"entry_time":    {"entry_time", "Entry_Time", "ENTRY_TIME"},
	"exit_time":     {"exit_time", "Exit_Time", "EXIT_TIME"},
	"entry_price":   {"entry_price", "Entry_Price", "ENTRY_PRICE"},
	"exit_price":    {"exit_price", "Exit_Price", "EXIT_PRICE"},
	"position_type": {"position_type", "Position_Type", "POSITION_TYPE"},
	"net_pnl":       {"total_pnl", "net_pnl", "pnl", "Net_PnL", "PNL", "Total_PnL"},
	"profit_pct":    {"pnl_pct", "profit_pct", "return_pct", "Profit_Pct", "PROFIT_PCT"},
	"exit_reason":   {"exit_reason", "Exit_Reason", "EXIT_REASON"},
	"quantity":      {"quantity", "quantity_lots", "Quantity", "QUANTITY"},
	"direction":     {"direction", "Direction", "DIRECTION"},
	"signal_type":   {"signal_type", "Signal_Type", "SIGNAL_TYPE"},
	"entry_strike":  {"entry_strike", "Entry_Strike", "ENTRY_STRIKE"},
	"option_type":   {"option_type", "Option_Type", "OPTION_TYPE"},
}

// lookup resolves a logical field against the alias table. Exact matches
// only; there is no fuzzy header matching.
func (r RawRow) lookup(field string) string {
	for _, key := range columnAliases[field] {
		if v := r[key]; v != "" {
			return v
		}
	}
	return ""
}
