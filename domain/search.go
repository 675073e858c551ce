package domain

import "time"

// RankedResult is a candidate after scoring and fusion.
type RankedResult struct {
	Candidate
	Score          float64         `json:"score"`
	BaseScore      float64         `json:"base_score"`
	Sentiment      *SentimentScore `json:"sentiment,omitempty"`
	SentimentBoost float64         `json:"sentiment_boost"`
	Occasion       *OccasionScore  `json:"occasion,omitempty"`
	MatchTags      []string        `json:"match_tags,omitempty"`
}

type SearchMeta struct {
	Query            string         `json:"query"`
	TotalCandidates  int            `json:"total_candidates"`
	AfterDedup       int            `json:"after_dedup"`
	Returned         int            `json:"returned"`
	SourcesQueried   []string       `json:"sources_queried"`
	SourcesFailed    []string       `json:"sources_failed,omitempty"`
	Context          ContextProfile `json:"context"`
	Reranked         bool           `json:"reranked"`
	SentimentApplied bool           `json:"sentiment_applied"`
	OccasionApplied  bool           `json:"occasion_applied"`
	TookMs           int64          `json:"took_ms"`
	CachedAt         *time.Time     `json:"cached_at,omitempty"`
}

type SearchResult struct {
	Results []RankedResult `json:"results"`
	Meta    SearchMeta     `json:"meta"`
}

// IndexMatch is a hit from the pre-built vector index.
type IndexMatch struct {
	ID      string            `json:"id"`
	Score   float64           `json:"score"`
	Payload map[string]string `json:"payload"`
}

type CacheStats struct {
	Backend  string `json:"backend"`
	Entries  int64  `json:"entries"`
	Bytes    int64  `json:"bytes"`
	Hits     int64  `json:"hits"`
	Misses   int64  `json:"misses"`
	Evicted  int64  `json:"evicted"`
	MaxBytes int64  `json:"max_bytes,omitempty"`
}
