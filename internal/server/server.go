// Package server exposes the dashboard HTTP API. Every request reloads the
// trade logs from the configured source: the engines are pure functions over
// the freshly loaded list, so there is no cache to invalidate.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quant-dashboard/internal/config"
	"quant-dashboard/internal/domain"
	"quant-dashboard/internal/loader"
	"quant-dashboard/internal/logger"
	"quant-dashboard/internal/source"
	"quant-dashboard/internal/stats"
)

// Server is the dashboard HTTP API.
type Server struct {
	httpServer   *http.Server
	src          source.Source
	allowOrigins []string
	startedAt    time.Time
}

// New creates a server bound to addr, serving trades from src.
func New(addr string, src source.Source, cfg *config.Config) *Server {
	s := &Server{
		src:          src,
		allowOrigins: cfg.Server.AllowOrigins,
		startedAt:    time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/trades", s.handleTrades)
	mux.HandleFunc("/api/trades/by-strategy/", s.handleTradesByStrategy)
	mux.HandleFunc("/api/trades/by-date/", s.handleTradesByDate)
	mux.HandleFunc("/api/drawdown", s.handleDrawdown)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.cors(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving HTTP requests in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	logger.Info(ctx, "API server listening", "addr", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "API server stopped", "error", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) loadAll(ctx context.Context) ([]domain.Trade, loader.Report, error) {
	batches, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, loader.Report{}, err
	}
	trades, report := loader.Load(ctx, batches)
	return trades, report, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(context.Background(), "Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// GET /api/health — liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Trading Dashboard API is running",
		"uptime_s":  time.Since(s.startedAt).Seconds(),
		"timestamp": timestamp(),
	})
}

// GET /api/trades — all trades plus stats per strategy partition.
func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	op := logger.StartOperation(r.Context(), "load_trades")
	trades, report, err := s.loadAll(op.Context())
	if err != nil {
		op.EndWithError(err)
		s.writeError(w, err)
		return
	}
	op.End("trades", len(trades), "skipped_files", report.SkippedFiles())

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"trades":    trades,
		"stats":     stats.Partition(trades),
		"report":    report,
		"timestamp": timestamp(),
	})
}

// GET /api/trades/by-strategy/{strategy} — one strategy's trades and stats.
// "ALL" returns everything.
func (s *Server) handleTradesByStrategy(w http.ResponseWriter, r *http.Request) {
	strategy := strings.TrimPrefix(r.URL.Path, "/api/trades/by-strategy/")
	if strategy == "" {
		http.NotFound(w, r)
		return
	}

	trades, _, err := s.loadAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	filtered := trades
	if strategy != "ALL" {
		filtered = stats.Filter(trades, domain.Strategy(strategy))
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"strategy":  strategy,
		"trades":    filtered,
		"stats":     stats.Compute(filtered),
		"timestamp": timestamp(),
	})
}

// GET /api/trades/by-date/{date} — trades on one YYYY-MM-DD date.
func (s *Server) handleTradesByDate(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimPrefix(r.URL.Path, "/api/trades/by-date/")
	if date == "" {
		http.NotFound(w, r)
		return
	}

	trades, _, err := s.loadAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	filtered := []domain.Trade{}
	for _, t := range trades {
		if t.Date == date {
			filtered = append(filtered, t)
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"date":      date,
		"trades":    filtered,
		"stats":     stats.Compute(filtered),
		"timestamp": timestamp(),
	})
}

// strategyDrawdown is the abbreviated per-strategy drawdown view returned
// by /api/drawdown.
type strategyDrawdown struct {
	MaxDrawdown        float64 `json:"maxDrawdown"`
	MaxDrawdownPercent float64 `json:"maxDrawdownPercent"`
	DrawdownPeriods    int     `json:"drawdownPeriods"`
	TimeUnderwater     float64 `json:"timeUnderwater"`
}

// GET /api/drawdown — full drawdown analysis for ALL, abbreviated per
// strategy.
func (s *Server) handleDrawdown(w http.ResponseWriter, r *http.Request) {
	trades, _, err := s.loadAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	partition := stats.Partition(trades)
	metrics := map[string]interface{}{
		"ALL": partition["ALL"].DrawdownMetrics,
	}
	for _, strat := range domain.Strategies() {
		dd := partition[string(strat)].DrawdownMetrics
		metrics[string(strat)] = strategyDrawdown{
			MaxDrawdown:        dd.MaxDrawdown,
			MaxDrawdownPercent: dd.MaxDrawdownPercent,
			DrawdownPeriods:    dd.DrawdownPeriods,
			TimeUnderwater:     dd.TimeUnderwater,
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"drawdownMetrics": metrics,
		"timestamp":       timestamp(),
	})
}

// cors allows the dashboard frontend's origins. Entries starting with "."
// match any host with that suffix.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.allowOrigins {
		if strings.HasPrefix(allowed, ".") {
			u, err := url.Parse(origin)
			if err == nil && strings.HasSuffix(u.Hostname(), allowed) {
				return true
			}
			continue
		}
		if origin == allowed {
			return true
		}
	}
	return false
}
