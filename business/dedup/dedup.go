// Package dedup removes near-duplicate candidates. The same product often
// appears on several sources with identical imagery, so duplicates are
// detected first by perceptual image hash and then by embedding
// similarity.
package dedup

import (
	"fmt"
	"image"
	"math"
	"math/bits"
	"strconv"

	"github.com/corona10/goimagehash"

	"shopLens/domain"
	"shopLens/pkg/logger"
	"shopLens/pkg/metrics"
)

const (
	// Hamming distance at or below which two image hashes count as the
	// same image.
	hashDistanceThreshold = 5

	// Cosine similarity above which two embeddings count as the same
	// product.
	embeddingSimilarityThreshold = 0.98
)

// Item is a candidate plus the signals dedup works on. Hash is the hex
// form of the 64-bit average hash, empty when the image could not be
// processed. Embedding may be nil.
type Item struct {
	Candidate domain.Candidate
	Score     float64
	Hash      string
	Embedding []float32
}

// ComputeHash returns the perceptual average hash of an image as a
// 16-digit hex string.
func ComputeHash(img image.Image) (string, error) {
	hash, err := goimagehash.AverageHash(img)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hash.GetHash()), nil
}

// HashDistance is the Hamming distance between two hex hashes. Malformed
// or empty hashes are treated as maximally distant.
func HashDistance(a, b string) int {
	ha, errA := strconv.ParseUint(a, 16, 64)
	hb, errB := strconv.ParseUint(b, 16, 64)

	if errA != nil || errB != nil {
		return 64
	}

	return bits.OnesCount64(ha ^ hb)
}

// Deduplicate applies hash dedup first, embedding dedup second. Within a
// duplicate cluster the first-seen position is kept, but a later item with
// a higher score replaces the representative in place. Items with no hash
// pass the hash stage untouched.
func Deduplicate(items []Item) []Item {
	before := len(items)

	items = byImageHash(items)
	items = byEmbedding(items)

	if removed := before - len(items); removed > 0 {
		logger.Debug("duplicates removed", "count", removed, "remaining", len(items))
		metrics.DedupRemoved.Add(float64(removed))
	}

	return items
}

func byImageHash(items []Item) []Item {
	unique := make([]Item, 0, len(items))

	for _, item := range items {
		if item.Hash == "" {
			unique = append(unique, item)

			continue
		}

		duplicateOf := -1

		for i, existing := range unique {
			if existing.Hash == "" {
				continue
			}

			if HashDistance(item.Hash, existing.Hash) <= hashDistanceThreshold {
				duplicateOf = i

				break
			}
		}

		if duplicateOf >= 0 {
			// The cluster keeps its representative hash so later near
			// matches still land in the same cluster.
			if item.Score > unique[duplicateOf].Score {
				hash := unique[duplicateOf].Hash
				unique[duplicateOf] = item
				unique[duplicateOf].Hash = hash
			}

			continue
		}

		unique = append(unique, item)
	}

	return unique
}

func byEmbedding(items []Item) []Item {
	unique := make([]Item, 0, len(items))

	for _, item := range items {
		if item.Embedding == nil {
			unique = append(unique, item)

			continue
		}

		duplicate := false

		for _, existing := range unique {
			if existing.Embedding == nil {
				continue
			}

			if cosine(item.Embedding, existing.Embedding) > embeddingSimilarityThreshold {
				duplicate = true

				break
			}
		}

		if !duplicate {
			unique = append(unique, item)
		}
	}

	return unique
}

func cosine(a, b []float32) float64 {
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
