// Package match implements the transaction matching pipeline: string
// similarity, date parsing, feature engineering, and confidence scoring for
// reward/POS transaction pairs.
package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/medspasync/reconcile/internal/config"
)

// DefaultConfig returns a config.MatchConfig with the calibrated production
// tables. Weights sum to 1.0.
func DefaultConfig() config.MatchConfig {
	return config.MatchConfig{
		NameWeight:    0.4,
		ServiceWeight: 0.3,
		DateWeight:    0.2,
		AmountWeight:  0.1,

		CategoryBoost:    0.2,
		DateBoost:        0.1,
		BoostNameMinimum: 0.8,
		BoostDateMinimum: 0.8,

		HighThreshold:    0.95,
		MediumThreshold:  0.80,
		DefaultThreshold: 0.95,

		AmountRatioMin: 0.05,
		AmountRatioMax: 0.5,
		DateDecayHours: 168, // 7-day linear decay

		Categories:  defaultCategories(),
		DateFormats: defaultDateFormats(),
	}
}

// defaultCategories returns the treatment keyword table. Order matters: the
// first category matching both services wins.
func defaultCategories() []config.TreatmentCategory {
	return []config.TreatmentCategory{
		{Name: "botox", Keywords: []string{"botox", "lyft", "neurotoxin", "dysport", "toxin", "wrinkle"}},
		{Name: "filler", Keywords: []string{"filler", "juvederm", "voluma", "restylane", "radiesse", "dermal"}},
		{Name: "coolsculpting", Keywords: []string{"coolsculpting", "body sculpting", "fat freezing", "cryo"}},
		{Name: "laser", Keywords: []string{"laser", "ipl", "photofacial", "hair removal", "skin resurfacing"}},
		{Name: "iv", Keywords: []string{"iv", "im", "injection", "vitamin", "b-12", "wellness", "hydration"}},
	}
}

// defaultDateFormats returns the non-ISO layouts tried in order.
func defaultDateFormats() []string {
	return []string{
		"2006-01-02",
		"01/02/2006",
		"02/01/2006",
		"01.02.06",
		"01-02-2006",
	}
}

// FillTables populates the keyword and date-format tables on a MatchConfig
// loaded from file/env, which can override scalars but not the tables.
func FillTables(c *config.MatchConfig) {
	if len(c.Categories) == 0 {
		c.Categories = defaultCategories()
	}
	if len(c.DateFormats) == 0 {
		c.DateFormats = defaultDateFormats()
	}
}

// WeightSum returns the sum of the feature weights.
func WeightSum(c config.MatchConfig) float64 {
	return c.NameWeight + c.ServiceWeight + c.DateWeight + c.AmountWeight
}

// ValidateConfig checks that a MatchConfig is internally consistent.
func ValidateConfig(c config.MatchConfig) error {
	var errs []string

	weights := map[string]float64{
		"name_weight":    c.NameWeight,
		"service_weight": c.ServiceWeight,
		"date_weight":    c.DateWeight,
		"amount_weight":  c.AmountWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	// Weights must sum to 1.0 (tolerance for floating-point).
	if sum := WeightSum(c); math.Abs(sum-1.0) > 0.001 {
		errs = append(errs, fmt.Sprintf("feature weights should sum to 1.0, got %.3f", sum))
	}

	for name, t := range map[string]float64{
		"high_threshold":     c.HighThreshold,
		"medium_threshold":   c.MediumThreshold,
		"default_threshold":  c.DefaultThreshold,
		"boost_name_minimum": c.BoostNameMinimum,
		"boost_date_minimum": c.BoostDateMinimum,
	} {
		if t < 0 || t > 1 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 1", name))
		}
	}
	if c.MediumThreshold > c.HighThreshold {
		errs = append(errs, "medium_threshold must be <= high_threshold")
	}

	if c.AmountRatioMin < 0 || c.AmountRatioMax <= c.AmountRatioMin {
		errs = append(errs, "amount ratio band must satisfy 0 <= min < max")
	}
	if c.DateDecayHours <= 0 {
		errs = append(errs, "date_decay_hours must be > 0")
	}

	if len(c.Categories) == 0 {
		errs = append(errs, "treatment category table must not be empty")
	}
	for _, cat := range c.Categories {
		if cat.Name == "" || len(cat.Keywords) == 0 {
			errs = append(errs, "every treatment category needs a name and keywords")
			break
		}
	}
	if len(c.DateFormats) == 0 {
		errs = append(errs, "date format list must not be empty")
	}

	if len(errs) > 0 {
		return eris.Errorf("match: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
