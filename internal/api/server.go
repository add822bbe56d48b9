// Package api is the HTTP boundary over the analytics engine.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"hr-insights-go/internal/analytics"
	"hr-insights-go/internal/genai"
	"hr-insights-go/internal/logger"
)

type Server struct {
	engine      *analytics.Engine
	ai          *genai.Client
	log         *logger.Logger
	loadTimeout time.Duration
	aiTimeout   time.Duration
}

func NewServer(engine *analytics.Engine, ai *genai.Client, log *logger.Logger, loadTimeout, aiTimeout time.Duration) *Server {
	return &Server{
		engine:      engine,
		ai:          ai,
		log:         log,
		loadTimeout: loadTimeout,
		aiTimeout:   aiTimeout,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/summary", s.handleSummary)
	mux.HandleFunc("/employees", s.handleEmployees)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/reload-data", s.handleReload)
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "ok")
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.log.WithRequest(r).Info("status check")
	total := s.engine.Count()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "online",
		"data_loaded":     total > 0,
		"total_employees": total,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "summary")
	if s.engine.Count() == 0 {
		reqLog.Warn("summary requested with no data loaded")
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "No data loaded. Please check database connection.",
		})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Summary())
}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "employees")
	if s.engine.Count() == 0 {
		reqLog.Warn("employees requested with no data loaded")
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No data loaded."})
		return
	}
	quadrant := r.URL.Query().Get("quadrant")
	records := s.engine.Records(quadrant)
	reqLog.WithFields(logrus.Fields{"quadrant": quadrant, "matches": len(records)}).Info("employees served")
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "analyze")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.engine.Count() == 0 {
		reqLog.Warn("analyze requested with no data loaded")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "Analyzer is not ready or data is not loaded.",
		})
		return
	}

	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing 'query' in request body.",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.aiTimeout)
	defer cancel()

	contextBlock := BuildContext(s.engine.Summary())
	answer, err := s.ai.Analyze(ctx, body.Query, contextBlock)
	if err != nil {
		// The AI path always yields a string: each failure kind renders
		// as a diagnostic answer, never as an HTTP error.
		var aiErr *genai.Error
		if errors.As(err, &aiErr) {
			reqLog.WithFields(logrus.Fields{"kind": string(aiErr.Kind), "detail": aiErr.Detail}).Warn("AI analysis degraded")
			answer = renderAIError(aiErr)
		} else {
			reqLog.WithError(err).Error("AI analysis failed")
			answer = "AI analysis failed: " + err.Error()
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"analysis": answer})
}

func renderAIError(e *genai.Error) string {
	switch e.Kind {
	case genai.KindNotConfigured:
		return "AI analysis is not available: no generative AI service is configured."
	case genai.KindNoCandidates:
		return "The AI service returned no candidates."
	case genai.KindContentFiltered:
		return "The AI service returned no usable text (" + e.Detail + ")."
	case genai.KindTimeout:
		return "AI analysis timed out before a response arrived."
	default:
		return "AI analysis failed: " + e.Detail
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "reload-data")
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.loadTimeout)
	defer cancel()

	n, err := s.engine.Load(ctx)
	switch {
	case err != nil:
		reqLog.WithError(err).Error("reload failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to reload data: " + err.Error(),
		})
	case n == 0:
		reqLog.Warn("reload returned no rows")
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status":          "warning",
			"message":         "Reload executed, but the feedback table returned no rows.",
			"total_employees": 0,
		})
	default:
		reqLog.WithField("records", n).Info("reload complete")
		writeJSON(w, http.StatusOK, map[string]any{
			"status":          "success",
			"message":         fmt.Sprintf("Successfully reloaded %d records.", n),
			"total_employees": n,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
