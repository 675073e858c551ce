// Package fusion combines the ranking signals into one score and settles
// the final ordering.
package fusion

import (
	"math"
	"sort"

	"shopLens/domain"
)

// Score fuses the signals multiplicatively. With context available the
// context-adjusted score replaces the base so the boosts never stack
// additively.
func Score(base, sentimentBoost float64, occ *domain.OccasionScore) float64 {
	if sentimentBoost == 0 {
		sentimentBoost = 1.0
	}

	if occ != nil {
		return occ.FinalScore * sentimentBoost
	}

	return base * sentimentBoost
}

// SortStable orders results by score descending. The sort is stable so
// equal scores keep their source order and repeated searches return the
// same ranking.
func SortStable(results []domain.RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

// TopK truncates to the best k results.
func TopK(results []domain.RankedResult, k int) []domain.RankedResult {
	if k > 0 && len(results) > k {
		return results[:k]
	}

	return results
}

// Normalize scales a vector to unit length. Zero or empty vectors pass
// through unchanged.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}

	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}

	return out
}

// CosineSimilarity returns the cosine of two vectors, 0 when lengths
// differ or either vector is zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
