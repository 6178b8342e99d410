package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/model"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/port"
	"github.com/Hec-S/Supplement-Guard-sub003/internal/domain/service"
)

var tracer = otel.Tracer("github.com/Hec-S/Supplement-Guard-sub003/internal/application/usecase")

// ErrInvalidComparison marks failures caused by the caller's input rather
// than by the service.
var ErrInvalidComparison = errors.New("invalid comparison")

// AssessSupplement is the use case for detecting anomalies in and scoring a
// reconciled supplement.
type AssessSupplement struct {
	detector  service.Detector
	scorer    service.Scorer
	fallback  service.Scorer
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewAssessSupplement creates a new AssessSupplement use case. fallback scores
// the claim whenever scorer fails.
func NewAssessSupplement(
	detector service.Detector,
	scorer service.Scorer,
	fallback service.Scorer,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *AssessSupplement {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &AssessSupplement{
		detector:  detector,
		scorer:    scorer,
		fallback:  fallback,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Execute detects anomalies, scores the claim, builds the assessment and publishes its events.
func (uc *AssessSupplement) Execute(ctx context.Context, req dto.ComparisonRequest) (resp dto.AssessmentResponse, err error) {
	ctx, span := tracer.Start(ctx, "AssessSupplement.Execute",
		trace.WithAttributes(attribute.String("claim.id", req.ClaimID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(
				attribute.Int("risk.score", resp.RiskScore),
				attribute.String("risk.level", resp.RiskLevel),
				attribute.String("risk.method", resp.Method),
			)
		}
		span.End()
	}()

	// 1. Map the request onto the domain comparison.
	comparison, err := req.ToModel()
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %w", ErrInvalidComparison, err)
	}

	// 2. Detect anomalies. Detection failures are never masked.
	anomalies, err := uc.detector.Detect(comparison)
	if err != nil {
		var checkErr *service.CheckError
		if errors.As(err, &checkErr) && checkErr.Check == service.CheckInput {
			return dto.AssessmentResponse{}, fmt.Errorf("%w: %w", ErrInvalidComparison, err)
		}
		return dto.AssessmentResponse{}, fmt.Errorf("failed to detect anomalies: %w", err)
	}

	// 3. Score, falling back to the baseline rules on failure.
	score, err := uc.scorer.Score(comparison, anomalies)
	if err != nil {
		uc.logger.Warn("risk scoring failed, using baseline scoring",
			slog.String("claim_id", comparison.ClaimID),
			slog.String("error", err.Error()),
		)
		uc.metrics.RecordFallback(ctx)

		span.AddEvent("baseline scoring fallback")
		score, err = uc.fallback.Score(comparison, anomalies)
		if err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to score claim: %w", err)
		}
	}

	// 4. Create the assessment aggregate.
	assessment, err := model.NewAssessment(comparison.ClaimID, anomalies, score, uc.now())
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	// 5. Publish domain events.
	events := assessment.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	uc.metrics.RecordAssessment(ctx, assessment)

	uc.logger.Info("supplement assessed",
		slog.String("claim_id", assessment.ClaimID()),
		slog.String("assessment_id", assessment.ID().String()),
		slog.Int("risk_score", score.Overall),
		slog.String("risk_level", score.Level.String()),
		slog.String("method", string(score.Method)),
		slog.Int("anomalies", len(anomalies)),
	)

	return dto.FromModel(assessment), nil
}

type noopMetrics struct{}

func (noopMetrics) RecordAssessment(context.Context, *model.Assessment) {}
func (noopMetrics) RecordFallback(context.Context)                      {}
