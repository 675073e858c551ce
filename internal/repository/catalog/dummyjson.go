package catalog

import (
	"context"
	"fmt"
	"strings"
)

const dummyJSONBaseURL = "https://dummyjson.com"

type dummyJSONProduct struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
}

type dummyJSONResponse struct {
	Products []dummyJSONProduct `json:"products"`
	Total    int                `json:"total"`
}

func (p dummyJSONProduct) imageURL() string {
	if p.Thumbnail != "" {
		return p.Thumbnail
	}

	if len(p.Images) > 0 {
		return p.Images[0]
	}

	return ""
}

// fetchDummyJSONCategory pulls every product of one DummyJSON category.
// Missing categories are not an error, they just contribute nothing.
func fetchDummyJSONCategory(ctx context.Context, category string) ([]dummyJSONProduct, error) {
	var resp dummyJSONResponse

	url := fmt.Sprintf("%s/products/category/%s", dummyJSONBaseURL, category)
	if err := getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	return resp.Products, nil
}

func categoryLabel(category string) string {
	words := strings.Split(category, "-")
	for i, w := range words {
		if w == "" {
			continue
		}

		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}
