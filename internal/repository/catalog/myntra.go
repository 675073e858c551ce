package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"shopLens/domain"
	"shopLens/pkg/logger"
)

// Keyword to fashion category routing. Queries that name a garment kind
// only hit the matching categories instead of the whole fashion catalog.
// Kept as an ordered slice so category order, and with it candidate
// order, stays deterministic.
var fashionKeywordCategories = []struct {
	keyword    string
	categories []string
}{
	{"shirt", []string{"mens-shirts", "tops"}},
	{"dress", []string{"womens-dresses"}},
	{"shoe", []string{"mens-shoes", "womens-shoes"}},
	{"bag", []string{"womens-bags"}},
	{"watch", []string{"mens-watches", "womens-watches"}},
	{"jewelry", []string{"womens-jewellery"}},
	{"jewellery", []string{"womens-jewellery"}},
	{"ring", []string{"womens-jewellery"}},
	{"necklace", []string{"womens-jewellery"}},
	{"bracelet", []string{"womens-jewellery"}},
	{"sunglasses", []string{"sunglasses"}},
	{"glasses", []string{"sunglasses"}},
}

var allFashionCategories = []string{
	"womens-dresses",
	"womens-shoes",
	"mens-shirts",
	"mens-shoes",
	"womens-bags",
	"womens-jewellery",
	"mens-watches",
	"womens-watches",
	"sunglasses",
	"tops",
}

const maxFashionCategories = 8

// MyntraSource serves fashion products from the DummyJSON fashion
// categories.
type MyntraSource struct{}

func NewMyntraSource() *MyntraSource {
	return &MyntraSource{}
}

func (s *MyntraSource) Name() string {
	return "myntra"
}

func (s *MyntraSource) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	categories := s.targetCategories(query)

	candidates := make([]domain.Candidate, 0, limit)

	for _, category := range categories {
		items, err := fetchDummyJSONCategory(ctx, category)
		if err != nil {
			logger.Warn("fashion category fetch failed", "category", category, "error", err)

			continue
		}

		for _, item := range items {
			rating := item.Rating
			if rating == 0 {
				rating = 4.2
			}

			brand := item.Brand
			if brand == "" {
				brand = "Myntra"
			}

			candidates = append(candidates, domain.Candidate{
				ID:          fmt.Sprintf("myntra_%s_%d", category, item.ID),
				Title:       item.Title,
				Description: item.Description,
				ImageURL:    item.imageURL(),
				Price:       item.Price,
				Currency:    "USD",
				Category:    categoryLabel(category),
				Brand:       brand,
				Rating:      rating,
				Source:      "Myntra",
				BuyURL:      "https://www.myntra.com/" + url.QueryEscape(item.Title),
			})
		}
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func (s *MyntraSource) targetCategories(query string) []string {
	queryLower := strings.ToLower(query)

	var targets []string
	seen := make(map[string]bool)

	for _, entry := range fashionKeywordCategories {
		if !strings.Contains(queryLower, entry.keyword) {
			continue
		}

		for _, category := range entry.categories {
			if !seen[category] {
				seen[category] = true
				targets = append(targets, category)
			}
		}
	}

	if len(targets) == 0 {
		targets = allFashionCategories
	}

	if len(targets) > maxFashionCategories {
		targets = targets[:maxFashionCategories]
	}

	return targets
}
