package match

import (
	"math"
	"strings"
)

// Ratio scores the similarity of two strings on a 0-100 scale.
//
// The score blends token-set Jaccard similarity (with a flat bonus when one
// string contains the other) and a character-overlap ratio. This is a cheap
// heuristic, not an edit distance; the downstream confidence thresholds are
// calibrated against this exact formula, so it must not be swapped for a
// Levenshtein-style metric without re-deriving them.
func Ratio(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	jaccard := tokenJaccard(a, b)
	if strings.Contains(a, b) || strings.Contains(b, a) {
		jaccard += 0.3
	}

	overlap := charOverlap(a, b)

	score := math.Round((jaccard*0.6 + overlap*0.4) * 100)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(score)
}

// tokenJaccard computes intersection/union over whitespace-split tokens.
func tokenJaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var intersection, union int
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union = len(setB)
	for tok := range setA {
		if !setB[tok] {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

// charOverlap counts the runes of a that appear anywhere in b, scaled by the
// longer string's length.
func charOverlap(a, b string) float64 {
	runesA := []rune(a)
	runesB := []rune(b)

	inB := make(map[rune]bool, len(runesB))
	for _, r := range runesB {
		inB[r] = true
	}

	var common int
	for _, r := range runesA {
		if inB[r] {
			common++
		}
	}

	longer := len(runesA)
	if len(runesB) > longer {
		longer = len(runesB)
	}
	if longer == 0 {
		return 0
	}
	return float64(common) / float64(longer)
}
