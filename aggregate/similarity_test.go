package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 100.0, Ratio("", ""))
	assert.Equal(t, 100.0, Ratio("abc", "abc"))
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
	assert.Equal(t, 0.0, Ratio("abc", ""))

	// 2*lcs/(m+n): lcs("abcd","abce") = 3, 2*3/8 = 75.
	assert.InDelta(t, 75.0, Ratio("abcd", "abce"), 0.001)

	// Symmetric.
	assert.Equal(t, Ratio("acme corporation", "acme corp"), Ratio("acme corp", "acme corporation"))
}

func TestRatioUnicode(t *testing.T) {
	// Rune-based, not byte-based.
	assert.Equal(t, 100.0, Ratio("café", "café"))
	assert.InDelta(t, 75.0, Ratio("café", "cafe"), 0.001)
}

func TestRatioNearDuplicateLabels(t *testing.T) {
	assert.GreaterOrEqual(t, Ratio("acme corporation", "acme corporation inc"), DefaultSimilarityThreshold)
	assert.Less(t, Ratio("acme corporation", "globex industries"), 50.0)
}
