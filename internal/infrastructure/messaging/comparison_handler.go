package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
	pkgkafka "github.com/Hec-S/Supplement-Guard-sub003/pkg/kafka"
)

// Assessor is satisfied by *usecase.AssessSupplement.
type Assessor interface {
	Execute(ctx context.Context, req dto.ComparisonRequest) (dto.AssessmentResponse, error)
}

// NewComparisonHandler returns a consumer handler that assesses every
// comparison published by the reconciliation engine. The assessment outcome
// leaves through the event publisher, not through the handler.
func NewComparisonHandler(assessor Assessor, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, msg pkgkafka.Message) error {
		var req dto.ComparisonRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			return fmt.Errorf("failed to decode comparison %q: %w", string(msg.Key), err)
		}
		if req.ClaimID == "" {
			req.ClaimID = string(msg.Key)
		}

		resp, err := assessor.Execute(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to assess claim %s: %w", req.ClaimID, err)
		}

		logger.DebugContext(ctx, "comparison assessed from topic",
			slog.String("claim_id", resp.ClaimID),
			slog.Int("risk_score", resp.RiskScore),
		)
		return nil
	}
}
