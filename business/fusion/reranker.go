package fusion

import (
	"sort"

	"shopLens/domain"
	"shopLens/pkg/logger"
	"shopLens/pkg/metrics"
)

// DefaultRerankDepth is how many head results the reranker reorders.
const DefaultRerankDepth = 20

// Rerank reorders the top of the list by direct cosine similarity between
// the query vector and each candidate's embedding, keyed by candidate ID.
// Reranking is best effort: when the query vector is missing or any head
// candidate has no embedding, the incoming order is returned unchanged and
// the fallback is counted. The tail below depth is never touched.
func Rerank(queryVec []float32, results []domain.RankedResult, embeddings map[string][]float32, depth int) ([]domain.RankedResult, bool) {
	if depth <= 0 {
		depth = DefaultRerankDepth
	}

	if depth > len(results) {
		depth = len(results)
	}

	if len(queryVec) == 0 || depth == 0 {
		metrics.RerankFallbacks.Inc()

		return results, false
	}

	similarities := make([]float64, depth)

	for i := 0; i < depth; i++ {
		emb, ok := embeddings[results[i].ID]
		if !ok || len(emb) == 0 {
			logger.Debug("rerank skipped, candidate missing embedding", "id", results[i].ID)
			metrics.RerankFallbacks.Inc()

			return results, false
		}

		similarities[i] = CosineSimilarity(queryVec, emb)
	}

	head := make([]domain.RankedResult, depth)
	copy(head, results[:depth])

	order := make([]int, depth)
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return similarities[order[a]] > similarities[order[b]]
	})

	reranked := make([]domain.RankedResult, len(results))

	for i, idx := range order {
		reranked[i] = head[idx]
	}

	copy(reranked[depth:], results[depth:])

	return reranked, true
}
