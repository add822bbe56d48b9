package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		score float64
		want  string
	}{
		{"well above top bound", 95, QuadrantChampion},
		{"top bound inclusive", 70, QuadrantChampion},
		{"just below top bound", 69.999, QuadrantConcerned},
		{"middle bound inclusive", 50, QuadrantConcerned},
		{"just below middle bound", 49.999, QuadrantIsolated},
		{"lower bound inclusive", 30, QuadrantIsolated},
		{"just below lower bound", 29.999, QuadrantAtRisk},
		{"zero", 0, QuadrantAtRisk},
		{"negative", -12.5, QuadrantAtRisk},
		{"above range propagates", 150, QuadrantChampion},
		{"NaN", math.NaN(), QuadrantAtRisk},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Classify(tc.score))
		})
	}
}

func TestClassifyAlwaysReturnsKnownQuadrant(t *testing.T) {
	t.Parallel()

	known := map[string]bool{
		QuadrantChampion:  true,
		QuadrantConcerned: true,
		QuadrantIsolated:  true,
		QuadrantAtRisk:    true,
	}
	for _, s := range []float64{-100, -0.001, 0, 29.999, 30, 49.999, 50, 69.999, 70, 100, 1e9, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.True(t, known[Classify(s)], "score %v", s)
	}
}
