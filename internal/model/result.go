package model

import "time"

// APIVersion tags every scoring response so downstream reconciliation jobs can
// detect calibration changes. Bump on any change to weights or thresholds.
const APIVersion = "1.0.0"

// Confidence buckets for a scored pair.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
	ConfidenceError  = "Error"
)

// Action recommendations derived from the confidence bucket.
const (
	RecommendAutoAccept     = "Auto-Accept"
	RecommendManualReview   = "Manual Review"
	RecommendLikelyNoMatch  = "Likely No Match"
	RecommendReviewRequired = "Manual Review Required"
)

// FeatureVector holds the similarity features computed for one candidate pair.
// Every field is always populated; unparseable inputs degrade the affected
// feature to zero rather than failing the pair.
type FeatureVector struct {
	NameSimilarity         float64 `json:"name_similarity"`
	ServiceSimilarity      float64 `json:"service_similarity"`
	TreatmentCategoryMatch int     `json:"treatment_category_match"`
	DateProximity          float64 `json:"date_proximity"`
	AmountRatioValid       int     `json:"amount_ratio_valid"`
	OverallConfidence      float64 `json:"overall_confidence"`
}

// MatchResult is the outcome of scoring one reward/POS pair. Constructed by a
// single scoring call and never mutated afterward.
type MatchResult struct {
	MatchProbability    float64       `json:"match_probability"`
	PredictedMatch      int           `json:"predicted_match"`
	ConfidenceLevel     string        `json:"confidence_level"`
	Recommendation      string        `json:"recommendation"`
	ThresholdUsed       float64       `json:"threshold_used"`
	FeatureAnalysis     FeatureVector `json:"feature_analysis"`
	ProcessingTimestamp time.Time     `json:"processing_timestamp"`
	APIVersion          string        `json:"api_version"`
}

// BatchItem is one slot in a batch scoring response. Every slot carries a
// result: failed pairs get a zero-probability fallback marked for manual
// review, plus the error message, so review queues still see the pair.
type BatchItem struct {
	PairIndex int          `json:"pair_index"`
	Result    *MatchResult `json:"result"`
	Error     string       `json:"error,omitempty"`
}

// OK reports whether the slot holds a real prediction rather than a fallback.
func (it BatchItem) OK() bool { return it.Error == "" }

// BatchSummary aggregates recommendation counts across a batch.
type BatchSummary struct {
	Total             int `json:"total"`
	AutoAccept        int `json:"auto_accept"`
	ManualReview      int `json:"manual_review"`
	LikelyNoMatch     int `json:"likely_no_match"`
	AutoAcceptRatePct int `json:"auto_accept_rate_percent"`
}

// BatchProcessingInfo describes how a batch was processed.
type BatchProcessingInfo struct {
	TotalPairs            int     `json:"total_pairs"`
	SuccessfulPredictions int     `json:"successful_predictions"`
	ThresholdUsed         float64 `json:"threshold_used"`
	APIVersion            string  `json:"api_version"`
}

// BatchResult is the full outcome of a batch scoring call.
type BatchResult struct {
	Items          []BatchItem         `json:"results"`
	Summary        BatchSummary        `json:"summary"`
	ProcessingInfo BatchProcessingInfo `json:"processing_info"`
}
