package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/usecase"
)

// SupplementAssessor assesses one comparison.
type SupplementAssessor interface {
	Execute(ctx context.Context, req dto.ComparisonRequest) (dto.AssessmentResponse, error)
}

// BatchAssessor assesses many comparisons.
type BatchAssessor interface {
	Execute(ctx context.Context, req dto.BatchRequest) (dto.BatchResponse, error)
}

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	single SupplementAssessor
	batch  BatchAssessor
	logger *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(single SupplementAssessor, batch BatchAssessor, logger *slog.Logger) *RiskServiceHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RiskServiceHandler{single: single, batch: batch, logger: logger}
}

// AssessSupplement detects anomalies in one comparison and scores it.
func (h *RiskServiceHandler) AssessSupplement(ctx context.Context, req *dto.ComparisonRequest) (*dto.AssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.single.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(err, slog.String("claim_id", req.ClaimID))
	}
	return &resp, nil
}

// AssessBatch assesses every comparison of the batch, reporting failures per item.
func (h *RiskServiceHandler) AssessBatch(ctx context.Context, req *dto.BatchRequest) (*dto.BatchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.batch.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(err, slog.Int("comparisons", len(req.Comparisons)))
	}
	return &resp, nil
}

func (h *RiskServiceHandler) toStatus(err error, attr slog.Attr) error {
	switch {
	case errors.Is(err, dto.ErrInvalidRequest), errors.Is(err, usecase.ErrInvalidComparison):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.Error("assessment failed", attr, slog.String("error", err.Error()))
		return status.Error(codes.Internal, "assessment failed")
	}
}
