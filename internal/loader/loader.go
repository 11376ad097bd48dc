// Package loader turns raw per-file row batches into the merged,
// chronologically ordered trade list the analytics engines consume.
package loader

import (
	"context"
	"sort"

	"quant-dashboard/internal/domain"
	"quant-dashboard/internal/logger"
	"quant-dashboard/internal/normalize"
)

// Batch is one source file's worth of raw rows. Err marks a file that could
// not be read or fetched; such batches are reported as skipped, never fatal.
type Batch struct {
	Filename string
	Rows     []normalize.RawRow
	Err      error
}

// FileReport records the outcome of loading a single source file.
type FileReport struct {
	Filename string `json:"filename"`
	Rows     int    `json:"rows"`
	Loaded   int    `json:"loaded"`
	Skipped  bool   `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// Report summarizes a load across all batches.
type Report struct {
	Files       []FileReport `json:"files"`
	TotalTrades int          `json:"totalTrades"`
}

// SkippedFiles returns the number of batches that failed to read.
func (r Report) SkippedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Skipped {
			n++
		}
	}
	return n
}

// Load normalizes every batch, drops trades that fail the validity
// invariant, and returns the merged list newest-first. A failed batch is
// isolated: it shows up in the report as skipped and the rest of the load
// proceeds, so the result is best effort across the files that were
// readable.
func Load(ctx context.Context, batches []Batch) ([]domain.Trade, Report) {
	all := []domain.Trade{}
	var report Report

	for _, b := range batches {
		if b.Err != nil {
			logger.Warn(ctx, "Skipping unreadable trade log", "file", b.Filename, "error", b.Err)
			report.Files = append(report.Files, FileReport{
				Filename: b.Filename,
				Skipped:  true,
				Error:    b.Err.Error(),
			})
			continue
		}

		loaded := 0
		for _, row := range b.Rows {
			trade, fieldErrs := normalize.Normalize(row, b.Filename)
			for _, fe := range fieldErrs {
				logger.Warn(ctx, "Unparseable numeric column", "file", b.Filename, "field", fe.Field, "value", fe.Value)
			}
			if !trade.Valid() {
				continue
			}
			all = append(all, trade)
			loaded++
		}

		logger.Debug(ctx, "Trade log loaded", "file", b.Filename, "rows", len(b.Rows), "loaded", loaded)
		report.Files = append(report.Files, FileReport{
			Filename: b.Filename,
			Rows:     len(b.Rows),
			Loaded:   loaded,
		})
	}

	// Newest first; stable so ties keep input order and repeated loads are
	// reproducible.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].SortTime().After(all[j].SortTime())
	})

	report.TotalTrades = len(all)
	return all, report
}
