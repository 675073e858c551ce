package catalog

import (
	"context"
	"fmt"
	"net/url"

	"shopLens/domain"
)

// AmazonSource serves general merchandise from the full DummyJSON catalog,
// ranked by query relevance with a top-rated fallback.
type AmazonSource struct{}

func NewAmazonSource() *AmazonSource {
	return &AmazonSource{}
}

func (s *AmazonSource) Name() string {
	return "amazon"
}

func (s *AmazonSource) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	var resp dummyJSONResponse

	if err := getJSON(ctx, dummyJSONBaseURL+"/products?limit=0&skip=0", &resp); err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(resp.Products))
	for _, item := range resp.Products {
		candidates = append(candidates, s.toCandidate(item))
	}

	return rankByRelevance(candidates, query, limit), nil
}

func (s *AmazonSource) toCandidate(item dummyJSONProduct) domain.Candidate {
	brand := item.Brand
	if brand == "" {
		brand = "Generic"
	}

	rating := item.Rating
	if rating == 0 {
		rating = 4.0
	}

	category := item.Category
	if category == "" {
		category = "General"
	}

	return domain.Candidate{
		ID:          fmt.Sprintf("amazon_%d", item.ID),
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.imageURL(),
		Price:       item.Price,
		Currency:    "USD",
		Category:    category,
		Brand:       brand,
		Rating:      rating,
		Source:      "Amazon",
		BuyURL:      "https://www.amazon.com/s?k=" + url.QueryEscape(item.Title),
	}
}
