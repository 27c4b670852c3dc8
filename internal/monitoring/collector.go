// Package monitoring aggregates in-process prediction counters with persisted
// run history into health snapshots.
package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/medspasync/reconcile/internal/model"
	"github.com/medspasync/reconcile/internal/store"
)

// MetricsSnapshot holds a point-in-time view of service activity.
type MetricsSnapshot struct {
	// In-process counters since start.
	Predictions      int64 `json:"predictions"`
	Batches          int64 `json:"batches"`
	AutoAccepts      int64 `json:"auto_accepts"`
	ManualReviews    int64 `json:"manual_reviews"`
	LikelyNoMatches  int64 `json:"likely_no_matches"`
	ValidationErrors int64 `json:"validation_errors"`
	InternalErrors   int64 `json:"internal_errors"`

	// Run history metrics (within lookback window; zero without a store).
	RunsTotal     int `json:"runs_total"`
	RunsComplete  int `json:"runs_complete"`
	RunsPartial   int `json:"runs_partial"`
	RunsFailed    int `json:"runs_failed"`
	PairsScored   int `json:"pairs_scored"`
	PairsFailed   int `json:"pairs_failed"`
	AvgAcceptRate int `json:"avg_accept_rate_percent"`

	// Metadata.
	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers metrics from handler callbacks and the run store. All
// counter methods are safe for concurrent use.
type Collector struct {
	mu sync.Mutex

	predictions      int64
	batches          int64
	autoAccepts      int64
	manualReviews    int64
	likelyNoMatches  int64
	validationErrors int64
	internalErrors   int64

	store store.Store // nil when persistence is disabled
}

// NewCollector creates a metrics collector. st may be nil.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// RecordPrediction tallies one scored pair by its recommendation.
func (c *Collector) RecordPrediction(recommendation string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.predictions++
	switch recommendation {
	case model.RecommendAutoAccept:
		c.autoAccepts++
	case model.RecommendManualReview:
		c.manualReviews++
	case model.RecommendLikelyNoMatch:
		c.likelyNoMatches++
	}
}

// RecordBatch tallies one batch invocation and its items.
func (c *Collector) RecordBatch(result model.BatchResult) {
	c.mu.Lock()
	c.batches++
	c.mu.Unlock()
	for _, it := range result.Items {
		if it.Result != nil {
			c.RecordPrediction(it.Result.Recommendation)
		}
	}
}

// RecordValidationError tallies a rejected request.
func (c *Collector) RecordValidationError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validationErrors++
}

// RecordInternalError tallies an unexpected failure.
func (c *Collector) RecordInternalError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.internalErrors++
}

// Collect gathers a snapshot over the given lookback window.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*MetricsSnapshot, error) {
	snap := &MetricsSnapshot{
		LookbackHours: lookbackHours,
		CollectedAt:   time.Now().UTC(),
	}

	c.mu.Lock()
	snap.Predictions = c.predictions
	snap.Batches = c.batches
	snap.AutoAccepts = c.autoAccepts
	snap.ManualReviews = c.manualReviews
	snap.LikelyNoMatches = c.likelyNoMatches
	snap.ValidationErrors = c.validationErrors
	snap.InternalErrors = c.internalErrors
	c.mu.Unlock()

	if c.store == nil {
		return snap, nil
	}

	cutoff := time.Now().UTC().Add(-time.Duration(lookbackHours) * time.Hour)
	runs, err := c.store.ListRuns(ctx, store.RunFilter{
		CreatedAfter: cutoff,
		Limit:        10000,
	})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list runs")
	}

	snap.RunsTotal = len(runs)
	var acceptRateSum int
	for _, r := range runs {
		switch r.Status {
		case model.RunStatusComplete:
			snap.RunsComplete++
		case model.RunStatusPartial:
			snap.RunsPartial++
		case model.RunStatusFailed:
			snap.RunsFailed++
		}
		snap.PairsScored += r.Pairs
		snap.PairsFailed += r.Failed
		acceptRateSum += r.Summary.AutoAcceptRatePct
	}
	if snap.RunsTotal > 0 {
		snap.AvgAcceptRate = acceptRateSum / snap.RunsTotal
	}

	return snap, nil
}
