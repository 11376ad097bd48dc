package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHubFixture(t *testing.T) *GitHub {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/repos/someone/trade-logs/contents/Trade_Logs", func(w http.ResponseWriter, r *http.Request) {
		entries := []map[string]string{
			{"name": "trades_20250101.csv", "type": "file", "download_url": srv.URL + "/raw/trades_20250101.csv"},
			{"name": "README.md", "type": "file", "download_url": srv.URL + "/raw/README.md"},
			{"name": "missing.csv", "type": "file", "download_url": srv.URL + "/raw/missing.csv"},
			{"name": "archive", "type": "dir", "download_url": ""},
		}
		_ = json.NewEncoder(w).Encode(entries)
	})
	mux.HandleFunc("/raw/trades_20250101.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "symbol,position_type,entry_time\nTCS,LONG,2025-01-01T09:30:00\n")
	})
	mux.HandleFunc("/raw/missing.csv", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	return NewGitHub(GitHubConfig{
		Owner:      "someone",
		Repo:       "trade-logs",
		Path:       "Trade_Logs",
		APIBaseURL: srv.URL,
	})
}

func TestGitHub_FetchDownloadsCSVs(t *testing.T) {
	gh := newGitHubFixture(t)

	batches, err := gh.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 2)

	byName := map[string]int{}
	for i, b := range batches {
		byName[b.Filename] = i
	}

	good := batches[byName["trades_20250101.csv"]]
	require.NoError(t, good.Err)
	require.Len(t, good.Rows, 1)
	assert.Equal(t, "TCS", good.Rows[0]["symbol"])

	// The 404 is isolated into its batch, not a fetch-level failure.
	assert.Error(t, batches[byName["missing.csv"]].Err)
}

func TestGitHub_FetchListingFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	gh := NewGitHub(GitHubConfig{Owner: "o", Repo: "r", Path: "p", APIBaseURL: srv.URL})
	_, err := gh.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing o/r/p")
}

func TestGitHub_RefAppended(t *testing.T) {
	var gotRef string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRef = r.URL.Query().Get("ref")
		_ = json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer srv.Close()

	gh := NewGitHub(GitHubConfig{Owner: "o", Repo: "r", Path: "p", Ref: "main", APIBaseURL: srv.URL})
	batches, err := gh.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, batches)
	assert.Equal(t, "main", gotRef)
}
