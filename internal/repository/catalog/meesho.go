package catalog

import (
	"context"
	"fmt"
	"math"
	"net/url"

	"shopLens/domain"
	"shopLens/pkg/logger"
)

var budgetCategories = []string{
	"smartphones",
	"laptops",
	"fragrances",
	"skin-care",
	"groceries",
	"home-decoration",
	"kitchen-accessories",
	"tablets",
	"mobile-accessories",
}

// Budget sources list the same catalog items at a 40% discount.
const budgetPriceFactor = 0.6

// MeeshoSource serves budget listings from the cheaper DummyJSON
// categories.
type MeeshoSource struct{}

func NewMeeshoSource() *MeeshoSource {
	return &MeeshoSource{}
}

func (s *MeeshoSource) Name() string {
	return "meesho"
}

func (s *MeeshoSource) Search(ctx context.Context, _ string, limit int) ([]domain.Candidate, error) {
	candidates := make([]domain.Candidate, 0, limit)

	for _, category := range budgetCategories {
		items, err := fetchDummyJSONCategory(ctx, category)
		if err != nil {
			logger.Warn("budget category fetch failed", "category", category, "error", err)

			continue
		}

		for _, item := range items {
			rating := item.Rating
			if rating == 0 {
				rating = 4.0
			}

			brand := item.Brand
			if brand == "" {
				brand = "Meesho"
			}

			price := math.Round(item.Price*budgetPriceFactor*100) / 100

			candidates = append(candidates, domain.Candidate{
				ID:          fmt.Sprintf("meesho_%s_%d", category, item.ID),
				Title:       item.Title,
				Description: item.Description,
				ImageURL:    item.imageURL(),
				Price:       price,
				Currency:    "USD",
				Category:    categoryLabel(category),
				Brand:       brand,
				Rating:      rating,
				Source:      "Meesho",
				BuyURL:      "https://www.meesho.com/search?q=" + url.QueryEscape(item.Title),
			})
		}
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}
