package domain

// OccasionScore captures how well a candidate fits the request context.
// FinalScore is the context-adjusted relevance, never above 1.0.
type OccasionScore struct {
	BaseRelevance float64  `json:"base_relevance"`
	OccasionBoost float64  `json:"occasion_boost"`
	MoodBoost     float64  `json:"mood_boost"`
	ContextBoost  float64  `json:"context_boost"`
	FinalScore    float64  `json:"final_score"`
	MatchTags     []string `json:"match_tags,omitempty"`
	Explanation   string   `json:"explanation"`
}
