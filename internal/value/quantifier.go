// Package value quantifies the ROI a practice gets from automated
// reconciliation, using industry benchmarks for manual processing cost.
package value

import (
	"math"

	"go.uber.org/zap"

	"github.com/medspasync/reconcile/internal/config"
	"github.com/medspasync/reconcile/internal/model"
)

// DefaultConfig returns the medical-spa industry benchmarks.
func DefaultConfig() config.ValueConfig {
	return config.ValueConfig{
		HourlyRate:            45.0, // average staff hourly rate
		HoursPerTransaction:   0.25, // manual reconciliation time per txn
		CostPerError:          150.0,
		DefaultSubscription:   299.0,
		AccuracyBaseline:      0.85,
		DefaultAccuracy:       0.947,
		DefaultMonthlyRevenue: 50000,
		DefaultTeamSize:       5,
	}
}

// Quantifier computes value metrics for practices. Read-only after
// construction, safe for concurrent use.
type Quantifier struct {
	cfg config.ValueConfig
}

// NewQuantifier creates a Quantifier with the given benchmarks.
func NewQuantifier(cfg config.ValueConfig) *Quantifier {
	return &Quantifier{cfg: cfg}
}

// Quantify computes the full value metrics for one practice snapshot.
func (q *Quantifier) Quantify(snap model.PracticeSnapshot) model.ValueMetrics {
	accuracy := orDefault(snap.AccuracyRate, q.cfg.DefaultAccuracy)
	subscription := orDefault(snap.MonthlySubscription, q.cfg.DefaultSubscription)

	manualHours := snap.TransactionsProcessed * q.cfg.HoursPerTransaction
	timeSaved := manualHours - snap.TimeSpentHours

	revenueRecovered := snap.RevenueFound + snap.ErrorsDetected*q.cfg.CostPerError

	var efficiencyGain float64
	if manualHours > 0 {
		efficiencyGain = timeSaved / manualHours * 100
	}

	accuracyImprovement := (accuracy - q.cfg.AccuracyBaseline) * 100

	laborSavings := timeSaved * q.cfg.HourlyRate
	errorSavings := snap.ErrorsDetected * q.cfg.CostPerError
	costSavings := laborSavings + errorSavings

	var totalROI float64
	if subscription > 0 {
		totalROI = (costSavings + revenueRecovered) / subscription * 100
	}

	lifetime := q.LifetimeValue(snap)

	metrics := model.ValueMetrics{
		TotalROIPct:            totalROI,
		TimeSavedHours:         timeSaved,
		RevenueRecovered:       revenueRecovered,
		EfficiencyGainPct:      efficiencyGain,
		AccuracyImprovementPct: accuracyImprovement,
		CostSavings:            costSavings,
		PredictedLifetimeValue: lifetime,
		ConfidenceInterval:     q.confidenceInterval(snap, lifetime),
	}

	zap.L().Debug("value: practice quantified",
		zap.Float64("total_roi", totalROI),
		zap.Float64("time_saved", timeSaved),
	)

	return metrics
}

// LifetimeValue projects customer lifetime value from revenue, team size, and
// accuracy: a three-year revenue base scaled by a team multiplier (capped at
// 2x) and an accuracy multiplier over the manual baseline.
func (q *Quantifier) LifetimeValue(snap model.PracticeSnapshot) float64 {
	monthlyRevenue := orDefault(snap.MonthlyRevenue, q.cfg.DefaultMonthlyRevenue)
	teamSize := orDefault(snap.TeamSize, q.cfg.DefaultTeamSize)
	accuracy := orDefault(snap.AccuracyRate, q.cfg.DefaultAccuracy)

	base := monthlyRevenue * 12 * 3
	teamMultiplier := math.Min(teamSize/q.cfg.DefaultTeamSize, 2.0)
	accuracyMultiplier := 1 + (accuracy-q.cfg.AccuracyBaseline)*2

	return math.Max(0, base*teamMultiplier*accuracyMultiplier)
}

// confidenceInterval bounds the lifetime estimate. Sparse or low-quality data
// widens the margin.
func (q *Quantifier) confidenceInterval(snap model.PracticeSnapshot, estimate float64) model.ConfidenceInterval {
	quality := orDefault(snap.DataQualityScore, 0.8)

	const baseConfidence = 0.95
	adjusted := baseConfidence * quality * math.Min(snap.TransactionsProcessed/1000, 1.0)
	margin := (1 - adjusted) * 0.2

	return model.ConfidenceInterval{
		Lower: estimate * (1 - margin),
		Upper: estimate * (1 + margin),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
