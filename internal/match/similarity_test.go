package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio_ExactMatch(t *testing.T) {
	assert.Equal(t, 100, Ratio("sarah johnson", "sarah johnson"))
	assert.Equal(t, 100, Ratio("Sarah Johnson", "sarah johnson"), "case-insensitive")
	assert.Equal(t, 100, Ratio("  sarah johnson  ", "sarah johnson"), "trims whitespace")
}

func TestRatio_Empty(t *testing.T) {
	assert.Equal(t, 0, Ratio("", "x"))
	assert.Equal(t, 0, Ratio("x", ""))
	assert.Equal(t, 0, Ratio("", ""))
	assert.Equal(t, 0, Ratio("   ", "x"), "whitespace-only is empty")
}

func TestRatio_SubstringBonus(t *testing.T) {
	// tokens {botox} vs {botox, treatment}: jaccard 0.5, substring bonus
	// +0.3, char overlap 5/15. (0.8*0.6 + (5/15)*0.4)*100 rounds to 61.
	assert.Equal(t, 61, Ratio("botox", "botox treatment"))
}

func TestRatio_DisjointTokens(t *testing.T) {
	// No shared tokens or substring; only character overlap contributes.
	got := Ratio("botox treatment", "neurotoxin injection")
	assert.Greater(t, got, 0)
	assert.Less(t, got, 50)
}

func TestRatio_TokenOrderIrrelevant(t *testing.T) {
	pairs := [][2]string{
		{"sarah johnson", "johnson sarah"},
		{"a b c", "c b a"},
		{"", "anything"},
	}
	for _, p := range pairs {
		assert.Equal(t, Ratio(p[0], p[1]), Ratio(p[1], p[0]), "Ratio(%q,%q)", p[0], p[1])
	}
}

func TestRatio_Bounds(t *testing.T) {
	inputs := []string{"", "a", "botox", "botox treatment filler laser", "x y z w v u"}
	for _, a := range inputs {
		for _, b := range inputs {
			got := Ratio(a, b)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}

func TestRatio_ReorderedTokens(t *testing.T) {
	// Same token set means jaccard 1.0 even though strings differ.
	got := Ratio("sarah johnson", "johnson sarah")
	assert.GreaterOrEqual(t, got, 90)
}

func TestCharOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, charOverlap("abc", "abc"), 0.001)
	assert.InDelta(t, 0.0, charOverlap("abc", "xyz"), 0.001)
	// All three runes of "abc" occur in "aabbcc" (len 6).
	assert.InDelta(t, 0.5, charOverlap("abc", "aabbcc"), 0.001)
}

func TestTokenJaccard(t *testing.T) {
	assert.InDelta(t, 1.0, tokenJaccard("a b", "b a"), 0.001)
	assert.InDelta(t, 1.0/3.0, tokenJaccard("a b", "a c"), 0.001)
	assert.InDelta(t, 0.0, tokenJaccard("a b", "c d"), 0.001)
}
