package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"spendsight/internal/amqp"
	"spendsight/internal/analytics"
	"spendsight/internal/backend"
	"spendsight/internal/cache"
	"spendsight/internal/core"
	"spendsight/internal/insights"
	"spendsight/internal/report"
)

// analyzeRequest is the shared request body for the analysis endpoints.
type analyzeRequest struct {
	FilePath     string `json:"file_path"`
	ForecastDays int    `json:"forecast_days"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: "spendsight",
		Version: "1.0.0",
	})
}

// decodeRequest parses the request body and enforces the file_path
// field. It writes the 400 failure itself and reports ok=false when the
// handler should bail.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (analyzeRequest, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return analyzeRequest{}, false
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FilePath == "" {
		writeFailure(w, r, http.StatusBadRequest, "file_path is required")
		return analyzeRequest{}, false
	}
	return req, true
}

// loadRecords resolves the location reference and loads its transactions.
func (s *Server) loadRecords(ctx context.Context, location string) ([]core.Transaction, error) {
	source, err := s.sources.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	return source.Load(ctx)
}

// sourceMissing reports whether a file-backed location does not exist.
// Sheets references have no local file to check.
func sourceMissing(location string) bool {
	if backend.DetectType(location) == backend.SheetsSource {
		return false
	}
	_, err := os.Stat(location)
	return os.IsNotExist(err)
}

func (s *Server) cacheKey(endpoint, location string, horizon int) string {
	kind := string(backend.DetectType(location))
	return endpoint + "|" + cache.SourceKey(kind, location, horizon)
}

// handleAnalyze runs the full pipeline: analysis, insights and forecast
// in one document.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	key := s.cacheKey("analyze", req.FilePath, s.defaultHorizon)
	if resp, found := s.responses.Get(key); found {
		s.logger.DebugContext(r.Context(), "Analysis cache hit", "source", req.FilePath)
		writeRawJSON(w, resp.status, resp.body)
		return
	}

	if sourceMissing(req.FilePath) {
		writeFailure(w, r, http.StatusNotFound, fmt.Sprintf("File not found: %s", req.FilePath))
		return
	}

	records, err := s.loadRecords(r.Context(), req.FilePath)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Ledger load failed", "source", req.FilePath, "error", err)
		writeJSON(w, r, http.StatusBadRequest, analytics.NewFailure(err))
		return
	}

	doc := report.Build(records, s.engine, s.defaultHorizon)
	s.publishAnalysisCompleted(r.Context(), req.FilePath, records, doc.Analysis)

	s.respondCached(w, r, key, http.StatusOK, doc)
}

// handleTrends returns the descriptive analysis only.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	key := s.cacheKey("trends", req.FilePath, 0)
	if resp, found := s.responses.Get(key); found {
		writeRawJSON(w, resp.status, resp.body)
		return
	}

	records, err := s.loadRecords(r.Context(), req.FilePath)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Ledger load failed", "source", req.FilePath, "error", err)
		writeJSON(w, r, http.StatusOK, analytics.NewFailure(err))
		return
	}

	s.respondCached(w, r, key, http.StatusOK, analytics.Analyze(records))
}

// handleInsights returns budget insights and recommendations.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	key := s.cacheKey("insights", req.FilePath, 0)
	if resp, found := s.responses.Get(key); found {
		writeRawJSON(w, resp.status, resp.body)
		return
	}

	records, err := s.loadRecords(r.Context(), req.FilePath)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Ledger load failed", "source", req.FilePath, "error", err)
		writeJSON(w, r, http.StatusOK, analytics.NewFailure(err))
		return
	}

	doc, _ := insights.Complete(analytics.Analyze(records))
	s.respondCached(w, r, key, http.StatusOK, doc)
}

// handleForecast returns the multi-strategy forecast.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	horizon := req.ForecastDays
	if horizon <= 0 {
		horizon = s.defaultHorizon
	}

	key := s.cacheKey("forecast", req.FilePath, horizon)
	if resp, found := s.responses.Get(key); found {
		writeRawJSON(w, resp.status, resp.body)
		return
	}

	records, err := s.loadRecords(r.Context(), req.FilePath)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Ledger load failed", "source", req.FilePath, "error", err)
		writeJSON(w, r, http.StatusInternalServerError, analytics.NewFailure(err))
		return
	}

	s.respondCached(w, r, key, http.StatusOK, s.engine.ForecastExpenses(records, horizon))
}

// respondCached marshals once, stores the successful response, and writes it.
func (s *Server) respondCached(w http.ResponseWriter, r *http.Request, key string, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Response marshaling failed", "error", err, "path", r.URL.Path)
		writeFailure(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if status == http.StatusOK {
		s.responses.Set(key, cachedResponse{status: status, body: body})
	}
	writeRawJSON(w, status, body)
}

// publishAnalysisCompleted emits the completion event when a broker is
// configured. Failures are logged, never surfaced to the caller.
func (s *Server) publishAnalysisCompleted(ctx context.Context, source string, records []core.Transaction, analysis analytics.Analysis) {
	if s.events == nil {
		return
	}
	msg := amqp.NewAnalysisCompletedMessage(source, len(records), analysis.Summary.TotalSpending, len(analysis.Anomalies))
	if err := s.events.PublishAnalysisCompleted(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "Analysis event publish failed", "source", source, "error", err)
	}
}
