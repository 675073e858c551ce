package catalog

import (
	"sort"
	"strings"

	"shopLens/domain"
)

// relevance scores a candidate against the query text. The full phrase
// counts far more than individual keywords, and title matches count more
// than category or description matches.
func relevance(c domain.Candidate, query string) int {
	phrase := strings.ToLower(strings.TrimSpace(query))
	if phrase == "" {
		return 0
	}

	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)
	category := strings.ToLower(c.Category)

	score := 0

	if strings.Contains(title, phrase) {
		score += 100
	}

	if strings.Contains(desc, phrase) {
		score += 50
	}

	for _, kw := range strings.Fields(phrase) {
		if len(kw) <= 2 {
			continue
		}

		if strings.Contains(title, kw) {
			score += 30
		}

		if strings.Contains(category, kw) {
			score += 20
		}

		if strings.Contains(desc, kw) {
			score += 10
		}
	}

	return score
}

// rankByRelevance filters candidates to those matching the query and
// returns the best limit of them. When nothing matches, the top rated
// candidates are returned instead so the source still contributes.
func rankByRelevance(candidates []domain.Candidate, query string, limit int) []domain.Candidate {
	type scored struct {
		candidate domain.Candidate
		score     int
	}

	matched := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		if s := relevance(c, query); s > 0 {
			matched = append(matched, scored{candidate: c, score: s})
		}
	}

	if len(matched) == 0 {
		byRating := make([]domain.Candidate, len(candidates))
		copy(byRating, candidates)
		sort.SliceStable(byRating, func(i, j int) bool {
			return byRating[i].Rating > byRating[j].Rating
		})

		if len(byRating) > limit {
			byRating = byRating[:limit]
		}

		return byRating
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]domain.Candidate, len(matched))
	for i, m := range matched {
		out[i] = m.candidate
	}

	return out
}
