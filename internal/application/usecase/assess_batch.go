package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Hec-S/Supplement-Guard-sub003/internal/application/dto"
)

// AssessBatch assesses many supplements concurrently.
type AssessBatch struct {
	single      *AssessSupplement
	concurrency int
}

// NewAssessBatch creates a batch use case running at most concurrency
// assessments at once. A non-positive concurrency means no limit.
func NewAssessBatch(single *AssessSupplement, concurrency int) *AssessBatch {
	return &AssessBatch{single: single, concurrency: concurrency}
}

// Execute assesses every comparison and returns the results in request order.
// A failing claim is reported in its own result and does not stop the batch;
// only cancellation of ctx aborts it.
func (uc *AssessBatch) Execute(ctx context.Context, req dto.BatchRequest) (dto.BatchResponse, error) {
	results := make([]dto.BatchItemResult, len(req.Comparisons))

	g, gctx := errgroup.WithContext(ctx)
	if uc.concurrency > 0 {
		g.SetLimit(uc.concurrency)
	}

	for i, comparison := range req.Comparisons {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := dto.BatchItemResult{ClaimID: comparison.ClaimID}
			resp, err := uc.single.Execute(gctx, comparison)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Assessment = &resp
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return dto.BatchResponse{}, fmt.Errorf("batch assessment aborted: %w", err)
	}
	return dto.BatchResponse{Results: results}, nil
}
