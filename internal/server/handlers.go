package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/certlab/certmeter/internal/cert/consistency"
	"github.com/certlab/certmeter/internal/cert/coordination"
	apperrors "github.com/certlab/certmeter/internal/errors"
	"github.com/certlab/certmeter/internal/logging"
	runtimemetrics "github.com/certlab/certmeter/internal/metrics"
)

// consistencyRequest is the body accepted by POST /measure/consistency.
type consistencyRequest struct {
	AgentID   string   `json:"agent_id"`
	Prompt    string   `json:"prompt"`
	Distance  string   `json:"distance"`
	Responses []string `json:"responses"`
}

// coordinationResponse is the body returned by POST /measure/coordination.
// It echoes the pair identity alongside the computed result.
type coordinationResponse struct {
	AgentAID string `json:"agent_a_id"`
	AgentBID string `json:"agent_b_id"`
	Pattern  string `json:"interaction_pattern"`
	coordination.Result
}

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// healthResponse is the body returned by GET /health.
type healthResponse struct {
	Status  string                        `json:"status"`
	Version string                        `json:"version"`
	Memory  runtimemetrics.MemorySnapshot `json:"memory"`
}

// classifyError maps a measurement error to an HTTP status code and a
// stable machine-readable kind. Input errors map to 400, a degenerate
// baseline to 422 (the request is well-formed but unmeasurable), and
// anything unrecognized to 500.
func classifyError(err error) (int, string) {
	var (
		insufficientErr apperrors.InsufficientDataError
		invalidErr      apperrors.InvalidInputError
		patternErr      apperrors.UnknownPatternError
		degenerateErr   apperrors.DegenerateBaselineError
	)
	switch {
	case errors.As(err, &insufficientErr):
		return http.StatusBadRequest, "insufficient_data"
	case errors.As(err, &invalidErr):
		return http.StatusBadRequest, "invalid_input"
	case errors.As(err, &patternErr):
		return http.StatusBadRequest, "unknown_pattern"
	case errors.As(err, &degenerateErr):
		return http.StatusUnprocessableEntity, "degenerate_baseline"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeJSON serializes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", err)
	}
}

// writeError serializes err as a JSON error body using classifyError.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classifyError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", err,
			logging.String("path", r.URL.Path),
			logging.String("request_id", RequestID(r.Context())))
	} else {
		s.logger.Debug("request rejected",
			logging.String("path", r.URL.Path),
			logging.String("kind", kind),
			logging.String("reason", err.Error()))
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

// handleConsistency serves POST /measure/consistency. The request carries
// an agent identifier, the prompt and the collected responses; the reply
// is the consistency measurement result.
func (s *Server) handleConsistency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, span := s.tracer.Start(r.Context(), "measure.consistency")
	defer span.End()

	var req consistencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.NewInvalidInputError("body", "malformed JSON request: %v", err))
		return
	}

	providerName := req.Distance
	if providerName == "" {
		providerName = "levenshtein"
	}
	provider, err := s.distances.Get(providerName)
	if err != nil {
		s.metrics.RecordMeasurementError("consistency", "invalid_input")
		s.writeError(w, r, apperrors.NewInvalidInputError("distance", "%v", err))
		return
	}

	span.SetAttributes(
		attribute.String("agent.id", req.AgentID),
		attribute.String("distance.provider", providerName),
		attribute.Int("responses.count", len(req.Responses)),
	)

	analyzer := consistency.NewAnalyzer(provider)
	result, err := analyzer.MeasureConsistency(ctx, req.AgentID, req.Prompt, req.Responses)
	if err != nil {
		_, kind := classifyError(err)
		s.metrics.RecordMeasurementError("consistency", kind)
		span.SetStatus(codes.Error, kind)
		span.RecordError(err)
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordConsistency(result.Score)
	s.writeJSON(w, http.StatusOK, result)
}

// handleCoordination serves POST /measure/coordination. The request body
// is the coordination input (baselines, joint performance and pattern);
// the reply is the classified coordination effect.
func (s *Server) handleCoordination(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, span := s.tracer.Start(r.Context(), "measure.coordination")
	defer span.End()

	var input coordination.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.writeError(w, r, apperrors.NewInvalidInputError("body", "malformed JSON request: %v", err))
		return
	}

	span.SetAttributes(
		attribute.String("agent.a", input.AgentAID),
		attribute.String("agent.b", input.AgentBID),
		attribute.String("pattern", string(input.Pattern)),
	)

	result, err := s.coord.Effect(input)
	if err != nil {
		_, kind := classifyError(err)
		s.metrics.RecordMeasurementError("coordination", kind)
		span.SetStatus(codes.Error, kind)
		span.RecordError(err)
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordCoordination(result.Effect)
	s.writeJSON(w, http.StatusOK, coordinationResponse{
		AgentAID: input.AgentAID,
		AgentBID: input.AgentBID,
		Pattern:  string(input.Pattern),
		Result:   result,
	})
}

// handleHealth serves GET /health with the service version and a runtime
// memory snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: s.version,
		Memory:  s.memory.Snapshot(),
	})
}

// handleMetrics serves GET /metrics in Prometheus exposition format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		if s.logger != nil {
			s.logger.Debug("metrics endpoint rejected method",
				logging.String("method", r.Method))
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}
