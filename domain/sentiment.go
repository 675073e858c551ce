package domain

// SentimentScore is the visual profile of a product image. All component
// scores live in [0, 1].
type SentimentScore struct {
	Brightness   float64 `json:"brightness"`
	Saturation   float64 `json:"saturation"`
	Contrast     float64 `json:"contrast"`
	Harmony      float64 `json:"harmony"`
	Composition  float64 `json:"composition"`
	Warmth       float64 `json:"warmth"`
	Complexity   float64 `json:"complexity"`
	Overall      float64 `json:"overall"`
	Emotion      string  `json:"emotion"`
	EmotionScore float64 `json:"emotion_score"`
	Category     string  `json:"category"`
}
