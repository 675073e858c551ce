package domain

// Candidate is a product pulled from one of the retrieval sources before
// any scoring has happened.
type Candidate struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Rating      float64 `json:"rating"`
	Source      string  `json:"source"`
	BuyURL      string  `json:"buy_url"`
}
