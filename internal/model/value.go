package model

// PracticeSnapshot holds a practice's recent usage and outcome figures, the
// inputs to ROI quantification.
type PracticeSnapshot struct {
	TransactionsProcessed float64  `json:"transactions_processed"`
	TimeSpentHours        float64  `json:"time_spent"`
	ErrorsDetected        float64  `json:"errors_detected"`
	RevenueFound          float64  `json:"revenue_found"`
	AccuracyRate          *float64 `json:"accuracy_rate,omitempty"`
	MonthlySubscription   *float64 `json:"monthly_subscription,omitempty"`
	MonthlyRevenue        *float64 `json:"monthly_revenue,omitempty"`
	TeamSize              *float64 `json:"team_size,omitempty"`
	DataQualityScore      *float64 `json:"data_quality_score,omitempty"`
}

// ValueMetrics quantifies the value the platform delivered to a practice.
type ValueMetrics struct {
	TotalROIPct            float64            `json:"total_roi"`
	TimeSavedHours         float64            `json:"time_saved"`
	RevenueRecovered       float64            `json:"revenue_recovered"`
	EfficiencyGainPct      float64            `json:"efficiency_gain"`
	AccuracyImprovementPct float64            `json:"accuracy_improvement"`
	CostSavings            float64            `json:"cost_savings"`
	PredictedLifetimeValue float64            `json:"predicted_lifetime_value"`
	ConfidenceInterval     ConfidenceInterval `json:"confidence_interval"`
}

// ConfidenceInterval bounds a point estimate.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}
