package match

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/medspasync/reconcile/internal/config"
	"github.com/medspasync/reconcile/internal/model"
)

// Scorer scores reward/POS transaction pairs. It holds only read-only
// configuration, so a single Scorer is safe for concurrent use.
type Scorer struct {
	cfg config.MatchConfig
}

// NewScorer creates a Scorer with the given config. ValidateConfig should be
// called on cfg at startup.
func NewScorer(cfg config.MatchConfig) *Scorer {
	FillTables(&cfg)
	return &Scorer{cfg: cfg}
}

// Config returns the scorer's configuration.
func (s *Scorer) Config() config.MatchConfig { return s.cfg }

// Predict scores one pair. threshold drives only the boolean predicted-match
// flag; the confidence bucket and recommendation come from the fixed
// high/medium thresholds. That divergence matches observed product behavior
// and is deliberate.
func (s *Scorer) Predict(reward, pos model.TransactionRecord, threshold float64) model.MatchResult {
	features := EngineerFeatures(reward, pos, s.cfg)
	probability := features.OverallConfidence

	// Strong medical-spa indicators boost the raw confidence. Boosts are
	// additive and both may fire on the same pair.
	if features.NameSimilarity > s.cfg.BoostNameMinimum && features.TreatmentCategoryMatch == 1 {
		probability = math.Min(1.0, probability+s.cfg.CategoryBoost)
	}
	if features.DateProximity > s.cfg.BoostDateMinimum {
		probability = math.Min(1.0, probability+s.cfg.DateBoost)
	}

	var confidence, recommendation string
	switch {
	case probability >= s.cfg.HighThreshold:
		confidence = model.ConfidenceHigh
		recommendation = model.RecommendAutoAccept
	case probability >= s.cfg.MediumThreshold:
		confidence = model.ConfidenceMedium
		recommendation = model.RecommendManualReview
	default:
		confidence = model.ConfidenceLow
		recommendation = model.RecommendLikelyNoMatch
	}

	predicted := 0
	if probability >= threshold {
		predicted = 1
	}

	result := model.MatchResult{
		MatchProbability: round4(probability),
		PredictedMatch:   predicted,
		ConfidenceLevel:  confidence,
		Recommendation:   recommendation,
		ThresholdUsed:    threshold,
		FeatureAnalysis: model.FeatureVector{
			NameSimilarity:         round3(features.NameSimilarity),
			ServiceSimilarity:      round3(features.ServiceSimilarity),
			TreatmentCategoryMatch: features.TreatmentCategoryMatch,
			DateProximity:          round3(features.DateProximity),
			AmountRatioValid:       features.AmountRatioValid,
			OverallConfidence:      round3(features.OverallConfidence),
		},
		ProcessingTimestamp: time.Now().UTC(),
		APIVersion:          model.APIVersion,
	}

	zap.L().Debug("match: scored pair",
		zap.Float64("probability", result.MatchProbability),
		zap.String("recommendation", recommendation),
	)

	return result
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
