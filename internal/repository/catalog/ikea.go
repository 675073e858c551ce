package catalog

import (
	"context"
	"fmt"
	"net/url"

	"shopLens/domain"
	"shopLens/pkg/logger"
)

var homeCategories = []string{
	"furniture",
	"home-decoration",
	"kitchen-accessories",
	"groceries",
}

// IKEASource serves home and furniture products from the DummyJSON home
// categories.
type IKEASource struct{}

func NewIKEASource() *IKEASource {
	return &IKEASource{}
}

func (s *IKEASource) Name() string {
	return "ikea"
}

func (s *IKEASource) Search(ctx context.Context, _ string, limit int) ([]domain.Candidate, error) {
	candidates := make([]domain.Candidate, 0, limit)

	for _, category := range homeCategories {
		items, err := fetchDummyJSONCategory(ctx, category)
		if err != nil {
			logger.Warn("home category fetch failed", "category", category, "error", err)

			continue
		}

		for _, item := range items {
			rating := item.Rating
			if rating == 0 {
				rating = 4.5
			}

			candidates = append(candidates, domain.Candidate{
				ID:          fmt.Sprintf("ikea_%s_%d", category, item.ID),
				Title:       item.Title,
				Description: item.Description,
				ImageURL:    item.imageURL(),
				Price:       item.Price,
				Currency:    "USD",
				Category:    categoryLabel(category),
				Brand:       "IKEA",
				Rating:      rating,
				Source:      "IKEA",
				BuyURL:      "https://www.ikea.com/search/?q=" + url.QueryEscape(item.Title),
			})
		}
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}
