// A one-shot report over a directory of trade-log CSVs: loads everything,
// prints per-strategy performance, and can dump the full JSON payload for
// offline inspection.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"quant-dashboard/internal/loader"
	"quant-dashboard/internal/logger"
	"quant-dashboard/internal/source"
	"quant-dashboard/internal/stats"

	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", "trades", "directory holding trade-log CSV files")
	asJSON := flag.Bool("json", false, "emit the full stats payload as JSON")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), *dir, *asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dir string, asJSON bool) error {
	batches, err := source.NewLocal(dir).Fetch(ctx)
	if err != nil {
		return err
	}
	trades, report := loader.Load(ctx, batches)
	partition := stats.Partition(trades)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"trades": trades,
			"stats":  partition,
			"report": report,
		})
	}

	for _, f := range report.Files {
		if f.Skipped {
			fmt.Printf("skipped %s: %s\n", f.Filename, f.Error)
			continue
		}
		fmt.Printf("loaded  %s: %d/%d rows\n", f.Filename, f.Loaded, f.Rows)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "strategy\ttrades\tpnl\twin rate\tmax dd\tunderwater")
	for _, key := range []string{"ALL", "iTrack", "TrendFlo", "GBlast"} {
		s := partition[key]
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f%%\t%.2f\t%.1f%%\n",
			key, s.TotalTrades, s.TotalPnL, s.WinRate, s.MaxDrawdown, s.TimeUnderwater)
	}
	return w.Flush()
}
