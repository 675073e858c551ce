package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"shopLens/domain"
)

// FlipkartSource serves the FakeStore catalog. FakeStore is small, so a
// plain phrase filter is enough; when nothing matches, the head of the
// catalog is returned so the source still contributes candidates.
type FlipkartSource struct {
	baseURL string
}

func NewFlipkartSource() *FlipkartSource {
	return &FlipkartSource{baseURL: "https://fakestoreapi.com"}
}

func (s *FlipkartSource) Name() string {
	return "flipkart"
}

type fakeStoreProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func (s *FlipkartSource) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	var items []fakeStoreProduct

	if err := getJSON(ctx, s.baseURL+"/products", &items); err != nil {
		return nil, err
	}

	phrase := strings.ToLower(query)
	matched := make([]domain.Candidate, 0, len(items))

	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), phrase) ||
			strings.Contains(strings.ToLower(item.Description), phrase) {
			matched = append(matched, s.toCandidate(item))
		}
	}

	if len(matched) == 0 {
		for _, item := range items {
			matched = append(matched, s.toCandidate(item))
			if len(matched) == limit {
				break
			}
		}
	}

	if len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (s *FlipkartSource) toCandidate(item fakeStoreProduct) domain.Candidate {
	rating := item.Rating.Rate
	if rating == 0 {
		rating = 4.0
	}

	category := item.Category
	if category == "" {
		category = "General"
	}

	return domain.Candidate{
		ID:          fmt.Sprintf("flipkart_%d", item.ID),
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.Image,
		Price:       item.Price,
		Currency:    "USD",
		Category:    category,
		Brand:       "FakeStore",
		Rating:      rating,
		Source:      "Flipkart",
		BuyURL:      "https://www.flipkart.com/search?q=" + url.QueryEscape(item.Title),
	}
}
