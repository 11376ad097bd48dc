// Package source enumerates trade-log CSV files and hands them to the
// loader as raw-row batches, one batch per file. Files are fetched
// concurrently; a file that cannot be read travels inside its batch as an
// error so one bad file never sinks the load. Enumeration failure (the
// directory or repo listing itself) is the only hard error.
package source

import (
	"context"
	"fmt"

	"quant-dashboard/internal/config"
	"quant-dashboard/internal/loader"
)

// Source supplies one batch per trade-log file.
type Source interface {
	Fetch(ctx context.Context) ([]loader.Batch, error)
}

// New builds the source described by cfg.
func New(cfg *config.Config) (Source, error) {
	switch cfg.Source.Mode {
	case config.SourceLocal:
		return NewLocal(cfg.Source.CSVDir), nil
	case config.SourceGitHub:
		gh := cfg.Source.GitHub
		return NewGitHub(GitHubConfig{
			Owner: gh.Owner,
			Repo:  gh.Repo,
			Path:  gh.Path,
			Ref:   gh.Ref,
			Token: cfg.GitHubToken(),
		}), nil
	default:
		return nil, fmt.Errorf("unknown source mode '%s'", cfg.Source.Mode)
	}
}
