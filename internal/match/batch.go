package match

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/medspasync/reconcile/internal/model"
)

// DefaultBatchParallelism bounds concurrent pair scoring. Scoring is pure
// arithmetic, so this mostly limits goroutine churn on very large batches.
const DefaultBatchParallelism = 8

// BatchInput is one slot of a batch request. Invalid carries a validation
// error captured upstream; such slots skip scoring and produce a fallback
// item without aborting the rest of the batch.
type BatchInput struct {
	Pair    model.TransactionPair
	Invalid string
}

// ScoreBatch scores an ordered list of pairs. Results keep input order, and
// any per-pair failure is isolated to its own slot.
func (s *Scorer) ScoreBatch(ctx context.Context, inputs []BatchInput, threshold float64, parallelism int) model.BatchResult {
	if parallelism <= 0 {
		parallelism = DefaultBatchParallelism
	}

	items := make([]model.BatchItem, len(inputs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			items[i] = s.scoreSlot(i, in, threshold)
			return nil
		})
	}
	// Workers never return errors; failures land in their slots.
	_ = g.Wait()

	result := model.BatchResult{
		Items:   items,
		Summary: Summarize(items),
		ProcessingInfo: model.BatchProcessingInfo{
			TotalPairs:    len(inputs),
			ThresholdUsed: threshold,
			APIVersion:    model.APIVersion,
		},
	}
	for _, it := range items {
		if it.OK() {
			result.ProcessingInfo.SuccessfulPredictions++
		}
	}

	zap.L().Info("match: batch scored",
		zap.Int("pairs", len(inputs)),
		zap.Int("successful", result.ProcessingInfo.SuccessfulPredictions),
		zap.Int("auto_accept", result.Summary.AutoAccept),
	)

	return result
}

// scoreSlot produces the item for one slot, converting panics inside the
// pipeline into error slots so one malformed pair cannot take down a batch.
func (s *Scorer) scoreSlot(index int, in BatchInput, threshold float64) (item model.BatchItem) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("match: pair scoring panicked",
				zap.Int("pair_index", index),
				zap.Any("panic", r),
			)
			item = fallbackItem(index, fmt.Sprintf("internal error scoring pair %d", index))
		}
	}()

	if in.Invalid != "" {
		return fallbackItem(index, in.Invalid)
	}

	res := s.Predict(in.Pair.Reward, in.Pair.POS, threshold)
	return model.BatchItem{PairIndex: index, Result: &res}
}

// fallbackItem marks a slot for manual review with zero probability.
func fallbackItem(index int, msg string) model.BatchItem {
	return model.BatchItem{
		PairIndex: index,
		Error:     msg,
		Result: &model.MatchResult{
			MatchProbability:    0,
			ConfidenceLevel:     model.ConfidenceError,
			Recommendation:      model.RecommendReviewRequired,
			ProcessingTimestamp: time.Now().UTC(),
			APIVersion:          model.APIVersion,
		},
	}
}

// Summarize tallies recommendations across batch items. The auto-accept rate
// is a whole percentage, 0 for an empty batch.
func Summarize(items []model.BatchItem) model.BatchSummary {
	sum := model.BatchSummary{Total: len(items)}
	for _, it := range items {
		if it.Result == nil {
			continue
		}
		switch it.Result.Recommendation {
		case model.RecommendAutoAccept:
			sum.AutoAccept++
		case model.RecommendManualReview:
			sum.ManualReview++
		case model.RecommendLikelyNoMatch:
			sum.LikelyNoMatch++
		}
	}
	if sum.Total > 0 {
		sum.AutoAcceptRatePct = int(math.Round(float64(sum.AutoAccept) / float64(sum.Total) * 100))
	}
	return sum
}
