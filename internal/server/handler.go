package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/crimson-sun/verdict/internal/engine"
	"github.com/crimson-sun/verdict/internal/model"
)

// classifyRequest is the JSON request body for classification. Maxlen and
// Threshold override the server defaults when set.
type classifyRequest struct {
	Text      string   `json:"text"`
	Maxlen    int      `json:"maxlen,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

// responseMeta carries per-request metadata alongside the report.
type responseMeta struct {
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
	Timestamp string `json:"timestamp"`
}

// classifyResponse wraps a report with response metadata.
type classifyResponse struct {
	Data model.Report `json:"data"`
	Meta responseMeta `json:"meta"`
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, requestID, message string) {
	writeJSON(w, status, errorResponse{Error: message, RequestID: requestID})
}

// statusFor maps engine errors to HTTP status codes. Bad input and bad
// parameters are the caller's fault; a failing oracle is an upstream fault.
func statusFor(err error) int {
	var invalidErr *model.InvalidInputError
	var configErr *model.ConfigurationError
	var oracleErr *model.OracleError
	switch {
	case errors.As(err, &invalidErr), errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.As(err, &oracleErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	if !s.allow() {
		writeError(w, http.StatusTooManyRequests, requestID, "rate limit exceeded")
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, requestID, "invalid request body: "+err.Error())
		return
	}

	maxlen := req.Maxlen
	if maxlen == 0 {
		maxlen = s.defaults.Maxlen
	}
	threshold := s.defaults.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	report, err := s.engine.Process(r.Context(), engine.Request{
		Text:      req.Text,
		Maxlen:    maxlen,
		Threshold: threshold,
	})
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			slog.Error("classify failed", "request_id", requestID, "error", err)
		}
		writeError(w, status, requestID, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		Data: report,
		Meta: responseMeta{
			RequestID: requestID,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
