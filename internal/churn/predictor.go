// Package churn implements heuristic churn-risk assessment for subscriber
// accounts. Factors are weighted arithmetic over recent activity; there is no
// model inference here.
package churn

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/medspasync/reconcile/internal/config"
	"github.com/medspasync/reconcile/internal/model"
)

// Neutral defaults applied when an activity field is absent.
const (
	defaultEngagement   = 0.5
	defaultDaysLogin    = 30
	defaultSatisfaction = 3.0
	defaultAccuracy     = 0.947
	defaultPaymentRate  = 1.0
	defaultDaysSignup   = 30
)

// DefaultConfig returns the calibrated churn heuristic parameters.
func DefaultConfig() config.ChurnConfig {
	return config.ChurnConfig{
		BaseProbability:  0.1,
		EngagementWeight: 0.3,
		UsageWeight:      0.25,
		SupportWeight:    0.2,
		ValueWeight:      0.25,

		CriticalThreshold: 0.8,
		HighThreshold:     0.6,
		MediumThreshold:   0.4,
		LowThreshold:      0.2,
	}
}

// Predictor assesses churn risk for accounts. Read-only after construction.
type Predictor struct {
	cfg config.ChurnConfig
	now func() time.Time
}

// NewPredictor creates a Predictor with the given config.
func NewPredictor(cfg config.ChurnConfig) *Predictor {
	return &Predictor{cfg: cfg, now: time.Now}
}

// Assess evaluates one account's churn risk.
func (p *Predictor) Assess(acct model.AccountActivity) model.ChurnAssessment {
	probability := p.probability(acct)
	factors := riskFactors(acct)

	assessment := model.ChurnAssessment{
		ChurnProbability:     probability,
		RiskLevel:            p.riskLevel(probability),
		RiskFactors:          factors,
		ConfidenceScore:      confidence(acct),
		PredictedChurnDate:   p.churnDate(acct, probability),
		InterventionPriority: p.priority(probability, factors),
		RetentionScore:       1 - probability,
	}

	zap.L().Debug("churn: account assessed",
		zap.Float64("probability", probability),
		zap.String("risk_level", assessment.RiskLevel),
		zap.Int("risk_factors", len(factors)),
	)

	return assessment
}

// probability blends engagement, usage, support, and value factors over the
// base rate, clamped to [0,1].
func (p *Predictor) probability(acct model.AccountActivity) float64 {
	engagement := orDefault(acct.EngagementScore, defaultEngagement)
	daysLogin := orDefault(acct.DaysSinceLastLogin, defaultDaysLogin)
	loginFreq := orDefault(acct.LoginFrequency30d, 0)

	engagementFactor := (1-engagement)*0.3 +
		math.Min(daysLogin/30, 1)*0.3 +
		math.Max(0, 1-loginFreq/10)*0.4

	txns := orDefault(acct.TransactionsProcessed, 0)
	featuresUsed := orDefault(acct.FeaturesUsedCount, 0)

	usageFactor := math.Max(0, 1-txns/100)*0.5 +
		math.Max(0, 1-featuresUsed/5)*0.5

	tickets := orDefault(acct.SupportTickets30d, 0)
	satisfaction := orDefault(acct.SupportSatisfactionAvg, defaultSatisfaction)

	supportFactor := math.Min(tickets/5, 1)*0.4 +
		math.Max(0, 1-satisfaction/5)*0.6

	roi := orDefault(acct.ROIAchieved, 0)
	timeSaved := orDefault(acct.TimeSavedHours, 0)

	valueFactor := math.Max(0, 1-roi/200)*0.5 +
		math.Max(0, 1-timeSaved/20)*0.5

	probability := p.cfg.BaseProbability +
		engagementFactor*p.cfg.EngagementWeight +
		usageFactor*p.cfg.UsageWeight +
		supportFactor*p.cfg.SupportWeight +
		valueFactor*p.cfg.ValueWeight

	return math.Min(1, math.Max(0, probability))
}

func (p *Predictor) riskLevel(probability float64) string {
	switch {
	case probability >= p.cfg.CriticalThreshold:
		return model.RiskCritical
	case probability >= p.cfg.HighThreshold:
		return model.RiskHigh
	case probability >= p.cfg.MediumThreshold:
		return model.RiskMedium
	case probability >= p.cfg.LowThreshold:
		return model.RiskLow
	default:
		return model.RiskMinimal
	}
}

// riskFactors lists the specific signals behind an elevated assessment. The
// strings feed retention playbooks downstream, so they are stable identifiers.
func riskFactors(acct model.AccountActivity) []string {
	var factors []string

	if orDefault(acct.EngagementScore, defaultEngagement) < 0.3 {
		factors = append(factors, "Low engagement score")
	}
	if orDefault(acct.DaysSinceLastLogin, defaultDaysLogin) > 14 {
		factors = append(factors, "No recent login activity")
	}
	if orDefault(acct.LoginFrequency30d, 0) < 5 {
		factors = append(factors, "Infrequent platform usage")
	}
	if orDefault(acct.TransactionsProcessed, 0) < 10 {
		factors = append(factors, "Low transaction volume")
	}
	if orDefault(acct.FeaturesUsedCount, 0) < 2 {
		factors = append(factors, "Limited feature adoption")
	}
	if orDefault(acct.DataUploadFrequency, 0) < 1 {
		factors = append(factors, "No recent data uploads")
	}
	if orDefault(acct.SupportTickets30d, 0) > 3 {
		factors = append(factors, "Multiple support issues")
	}
	if orDefault(acct.SupportSatisfactionAvg, defaultSatisfaction) < 3.0 {
		factors = append(factors, "Low support satisfaction")
	}
	if orDefault(acct.ROIAchieved, 0) < 50 {
		factors = append(factors, "Low ROI achievement")
	}
	if orDefault(acct.TimeSavedHours, 0) < 5 {
		factors = append(factors, "Minimal time savings")
	}
	if orDefault(acct.AccuracyRate, defaultAccuracy) < 0.9 {
		factors = append(factors, "Low accuracy rate")
	}
	if orDefault(acct.PaymentOnTimeRate, defaultPaymentRate) < 0.8 {
		factors = append(factors, "Payment issues")
	}

	return factors
}

// confidence reflects data quality: field completeness, account age, and a
// fixed consistency term.
func confidence(acct model.AccountActivity) float64 {
	required := []*float64{
		acct.EngagementScore,
		acct.DaysSinceLastLogin,
		acct.LoginFrequency30d,
		acct.TransactionsProcessed,
		acct.FeaturesUsedCount,
		acct.ROIAchieved,
	}
	var present int
	for _, f := range required {
		if f != nil {
			present++
		}
	}
	completeness := float64(present) / float64(len(required))

	recency := math.Min(orDefault(acct.DaysSinceSignup, defaultDaysSignup)/90, 1)

	const consistency = 0.8
	conf := completeness*0.4 + recency*0.4 + consistency*0.2
	return math.Min(1, math.Max(0, conf))
}

// churnDate projects a churn date for at-risk accounts: 90 days out, pulled
// in by inactivity, support friction, and poor ROI. Low-risk accounts get none.
func (p *Predictor) churnDate(acct model.AccountActivity, probability float64) *time.Time {
	if probability < 0.3 {
		return nil
	}

	days := 90.0
	if orDefault(acct.DaysSinceLastLogin, defaultDaysLogin) > 30 {
		days *= 0.5
	}
	if orDefault(acct.SupportTickets30d, 0) > 5 {
		days *= 0.7
	}
	if orDefault(acct.ROIAchieved, 0) < 25 {
		days *= 0.8
	}

	d := p.now().UTC().Add(time.Duration(days * 24 * float64(time.Hour)))
	return &d
}

// priority escalates the probability-based priority when specific factor
// strings appear.
func (p *Predictor) priority(probability float64, factors []string) string {
	base := model.RiskLow
	switch {
	case probability >= p.cfg.CriticalThreshold:
		base = model.RiskCritical
	case probability >= p.cfg.HighThreshold:
		base = model.RiskHigh
	case probability >= p.cfg.MediumThreshold:
		base = model.RiskMedium
	}

	criticalFactors := []string{"Payment issues", "Multiple support issues", "No recent login activity"}
	highFactors := []string{"Low engagement score", "Low ROI achievement", "Limited feature adoption"}

	if containsAny(factors, criticalFactors) {
		return model.RiskCritical
	}
	if containsAny(factors, highFactors) {
		return model.RiskHigh
	}
	return base
}

func containsAny(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
