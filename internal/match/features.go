package match

import (
	"strings"

	"github.com/medspasync/reconcile/internal/config"
	"github.com/medspasync/reconcile/internal/model"
)

// EngineerFeatures computes the similarity feature vector for a reward/POS
// pair. Every feature is always set; a field that fails to parse degrades its
// feature to the worst value instead of failing the pair.
func EngineerFeatures(reward, pos model.TransactionRecord, cfg config.MatchConfig) model.FeatureVector {
	var fv model.FeatureVector

	rewardName := strings.ToLower(strings.TrimSpace(reward.CustomerName))
	posName := normalizePOSName(strings.ToLower(strings.TrimSpace(pos.CustomerName)), rewardName)
	fv.NameSimilarity = float64(Ratio(rewardName, posName)) / 100.0

	rewardService := strings.ToLower(reward.Service)
	posService := strings.ToLower(pos.Service)
	fv.ServiceSimilarity = float64(Ratio(rewardService, posService)) / 100.0

	fv.TreatmentCategoryMatch = categoryMatch(rewardService, posService, cfg.Categories)

	fv.DateProximity = dateProximity(reward.Date, pos.Date, cfg)
	fv.AmountRatioValid = amountRatioValid(reward.Amount.Float(), pos.Amount.Float(), cfg)

	fv.OverallConfidence = fv.NameSimilarity*cfg.NameWeight +
		fv.ServiceSimilarity*cfg.ServiceWeight +
		fv.DateProximity*cfg.DateWeight +
		float64(fv.AmountRatioValid)*cfg.AmountWeight

	return fv
}

// normalizePOSName rewrites "Last, First" POS names to "First Last" when the
// reward side uses natural order. Names with more than one comma are ambiguous
// and left alone.
func normalizePOSName(posName, rewardName string) string {
	if !strings.Contains(posName, ",") || strings.Contains(rewardName, ",") {
		return posName
	}
	parts := strings.Split(posName, ",")
	if len(parts) != 2 {
		return posName
	}
	return strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
}

// categoryMatch returns 1 iff both lowercased service strings hit the same
// category's keyword list. Categories are checked in table order; the first
// match wins.
func categoryMatch(rewardService, posService string, categories []config.TreatmentCategory) int {
	for _, cat := range categories {
		if hasKeyword(rewardService, cat.Keywords) && hasKeyword(posService, cat.Keywords) {
			return 1
		}
	}
	return 0
}

func hasKeyword(service string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(service, kw) {
			return true
		}
	}
	return false
}

// dateProximity decays linearly from 1 at zero gap to 0 at the decay window.
// Either date failing to parse yields 0.
func dateProximity(rewardDate, posDate string, cfg config.MatchConfig) float64 {
	rd, okR := ParseDate(rewardDate, cfg.DateFormats)
	pd, okP := ParseDate(posDate, cfg.DateFormats)
	if !okR || !okP {
		return 0
	}
	hours := rd.Sub(pd).Hours()
	if hours < 0 {
		hours = -hours
	}
	prox := 1 - hours/cfg.DateDecayHours
	if prox < 0 {
		return 0
	}
	return prox
}

// amountRatioValid is 1 iff the reward amount falls inside the expected
// fraction band of the POS amount. A zero POS amount always yields 0.
func amountRatioValid(rewardAmount, posAmount float64, cfg config.MatchConfig) int {
	if posAmount <= 0 {
		return 0
	}
	ratio := rewardAmount / posAmount
	if ratio >= cfg.AmountRatioMin && ratio <= cfg.AmountRatioMax {
		return 1
	}
	return 0
}
