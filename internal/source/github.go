package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"quant-dashboard/internal/fetch"
	"quant-dashboard/internal/loader"
	"quant-dashboard/internal/logger"
)

const defaultGitHubAPI = "https://api.github.com"

// GitHubConfig describes a repository directory holding trade-log CSVs.
type GitHubConfig struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
	Token string // optional; public repos work unauthenticated

	// APIBaseURL overrides the GitHub API endpoint, used in tests.
	APIBaseURL string
}

// GitHub lists a repository directory through the contents API and
// downloads each CSV it finds.
type GitHub struct {
	client *fetch.Client
	cfg    GitHubConfig
}

// NewGitHub creates a GitHub-backed source.
func NewGitHub(cfg GitHubConfig) *GitHub {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultGitHubAPI
	}
	opts := []fetch.ClientOption{
		fetch.WithBaseURL(cfg.APIBaseURL),
		fetch.WithTimeout(30 * time.Second),
		fetch.WithHeader("Accept", "application/vnd.github+json"),
		fetch.WithHeader("X-GitHub-Api-Version", "2022-11-28"),
	}
	if cfg.Token != "" {
		opts = append(opts, fetch.WithHeader("Authorization", "Bearer "+cfg.Token))
	}
	return &GitHub{client: fetch.NewClient(opts...), cfg: cfg}
}

type contentEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Fetch lists the configured directory and downloads every CSV
// concurrently. A file that fails to download is isolated into its batch.
func (s *GitHub) Fetch(ctx context.Context) ([]loader.Batch, error) {
	listURL := fmt.Sprintf("/repos/%s/%s/contents/%s", s.cfg.Owner, s.cfg.Repo, s.cfg.Path)
	if s.cfg.Ref != "" {
		listURL += "?ref=" + s.cfg.Ref
	}

	resp, err := s.client.GETWithRetry(ctx, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s/%s/%s: %w", s.cfg.Owner, s.cfg.Repo, s.cfg.Path, err)
	}

	var entries []contentEntry
	if err := resp.ParseJSON(&entries); err != nil {
		return nil, fmt.Errorf("listing %s/%s/%s: %w", s.cfg.Owner, s.cfg.Repo, s.cfg.Path, err)
	}

	var files []contentEntry
	for _, e := range entries {
		if e.Type == "file" && strings.HasSuffix(strings.ToLower(e.Name), ".csv") {
			files = append(files, e)
		}
	}
	logger.Debug(ctx, "Found trade logs", "repo", s.cfg.Owner+"/"+s.cfg.Repo, "files", len(files))

	batches := make([]loader.Batch, len(files))
	var wg sync.WaitGroup
	for i, entry := range files {
		wg.Add(1)
		go func(i int, entry contentEntry) {
			defer wg.Done()
			batches[i] = s.download(ctx, entry)
		}(i, entry)
	}
	wg.Wait()
	return batches, nil
}

func (s *GitHub) download(ctx context.Context, entry contentEntry) loader.Batch {
	resp, err := s.client.GETWithRetry(ctx, entry.DownloadURL, nil)
	if err != nil {
		return loader.Batch{Filename: entry.Name, Err: err}
	}
	rows, err := parseCSV(bytes.NewReader(resp.Body))
	if err != nil {
		return loader.Batch{Filename: entry.Name, Err: err}
	}
	return loader.Batch{Filename: entry.Name, Rows: rows}
}
