package model

import "time"

// AccountActivity holds the behavioral signals used for churn-risk assessment.
// Fields mirror the analytics export; absent values fall back to the neutral
// defaults applied by the churn package.
type AccountActivity struct {
	EngagementScore        *float64 `json:"engagement_score,omitempty"`
	DaysSinceLastLogin     *float64 `json:"days_since_last_login,omitempty"`
	LoginFrequency30d      *float64 `json:"login_frequency_30d,omitempty"`
	SessionDurationAvg     *float64 `json:"session_duration_avg,omitempty"`
	TransactionsProcessed  *float64 `json:"transactions_processed_30d,omitempty"`
	FeaturesUsedCount      *float64 `json:"features_used_count,omitempty"`
	DataUploadFrequency    *float64 `json:"data_upload_frequency,omitempty"`
	SupportTickets30d      *float64 `json:"support_tickets_30d,omitempty"`
	SupportSatisfactionAvg *float64 `json:"support_satisfaction_avg,omitempty"`
	ROIAchieved            *float64 `json:"roi_achieved,omitempty"`
	TimeSavedHours         *float64 `json:"time_saved_hours,omitempty"`
	AccuracyRate           *float64 `json:"accuracy_rate,omitempty"`
	PaymentOnTimeRate      *float64 `json:"payment_on_time_rate,omitempty"`
	DaysSinceSignup        *float64 `json:"days_since_signup,omitempty"`
}

// Churn risk levels, ordered from worst to best.
const (
	RiskCritical = "critical"
	RiskHigh     = "high"
	RiskMedium   = "medium"
	RiskLow      = "low"
	RiskMinimal  = "minimal"
)

// ChurnAssessment is the outcome of a churn-risk evaluation for one account.
type ChurnAssessment struct {
	ChurnProbability     float64    `json:"churn_probability"`
	RiskLevel            string     `json:"risk_level"`
	RiskFactors          []string   `json:"risk_factors"`
	ConfidenceScore      float64    `json:"confidence_score"`
	PredictedChurnDate   *time.Time `json:"predicted_churn_date,omitempty"`
	InterventionPriority string     `json:"intervention_priority"`
	RetentionScore       float64    `json:"retention_score"`
}
