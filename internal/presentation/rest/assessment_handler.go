package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/usecase"
)

// maxBodyBytes bounds a request body; batches of large invoices fit well within it.
const maxBodyBytes = 8 << 20

// SupplementAssessor assesses one comparison.
type SupplementAssessor interface {
	Execute(ctx context.Context, req dto.ComparisonRequest) (dto.AssessmentResponse, error)
}

// BatchAssessor assesses many comparisons.
type BatchAssessor interface {
	Execute(ctx context.Context, req dto.BatchRequest) (dto.BatchResponse, error)
}

// AssessmentHandler exposes the assessment use cases over HTTP/JSON.
type AssessmentHandler struct {
	single SupplementAssessor
	batch  BatchAssessor
	logger *slog.Logger
}

// NewAssessmentHandler creates the assessment HTTP handler.
func NewAssessmentHandler(single SupplementAssessor, batch BatchAssessor, logger *slog.Logger) *AssessmentHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AssessmentHandler{single: single, batch: batch, logger: logger}
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes registers the assessment endpoints. wrap is applied to each
// route, typically authentication middleware; nil leaves routes unwrapped.
func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	if wrap == nil {
		wrap = func(next http.Handler) http.Handler { return next }
	}
	mux.Handle("POST /v1/assessments", wrap(http.HandlerFunc(h.Assess)))
	mux.Handle("POST /v1/assessments/batch", wrap(http.HandlerFunc(h.AssessBatch)))
}

// Assess handles POST /v1/assessments.
func (h *AssessmentHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req dto.ComparisonRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.single.Execute(r.Context(), req)
	if err != nil {
		h.writeFailure(w, err, slog.String("claim_id", req.ClaimID))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AssessBatch handles POST /v1/assessments/batch.
func (h *AssessmentHandler) AssessBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.batch.Execute(r.Context(), req)
	if err != nil {
		h.writeFailure(w, err, slog.Int("comparisons", len(req.Comparisons)))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AssessmentHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed request body: " + err.Error()})
		return false
	}
	return true
}

func (h *AssessmentHandler) writeFailure(w http.ResponseWriter, err error, attr slog.Attr) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("assessment request failed", attr, slog.String("error", err.Error()))
	}
	writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrInvalidRequest), errors.Is(err, usecase.ErrInvalidComparison):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
