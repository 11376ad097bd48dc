package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"quant-dashboard/internal/loader"
	"quant-dashboard/internal/logger"
)

// Local reads trade-log CSVs from a directory on disk.
type Local struct {
	dir string
}

// NewLocal creates a local-filesystem source for dir.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Fetch lists *.csv files in the directory and reads them concurrently.
func (s *Local) Fetch(ctx context.Context) ([]loader.Batch, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading csv directory %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	logger.Debug(ctx, "Found trade logs", "dir", s.dir, "files", len(names))

	batches := make([]loader.Batch, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			batches[i] = s.readFile(name)
		}(i, name)
	}
	wg.Wait()
	return batches, nil
}

func (s *Local) readFile(name string) loader.Batch {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return loader.Batch{Filename: name, Err: err}
	}
	defer f.Close()

	rows, err := parseCSV(f)
	if err != nil {
		return loader.Batch{Filename: name, Err: err}
	}
	return loader.Batch{Filename: name, Rows: rows}
}
