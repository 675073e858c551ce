// Package search orchestrates the retrieval pipeline: embed the query,
// fan out to the catalog sources, deduplicate, score, fuse and rank.
package search

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/sync/errgroup"

	"shopLens/business/dedup"
	"shopLens/business/fusion"
	"shopLens/business/occasion"
	"shopLens/business/sentiment"
	"shopLens/domain"
	"shopLens/internal/cache"
	"shopLens/pkg/logger"
	"shopLens/pkg/metrics"
)

// Request is a fully resolved search request. At least one of Query and
// ImageBase64 must be set.
type Request struct {
	Query           string
	ImageBase64     string
	TopK            int
	TextWeight      float64
	ImageWeight     float64
	Sources         []string
	EnableSentiment bool
	EnableOccasion  bool
	EnableRerank    bool
	SentimentPref   string
	Context         domain.ContextProfile
	UseCache        bool
}

// FetchResult is what the candidate aggregator hands back.
type FetchResult struct {
	Candidates []domain.Candidate
	Queried    []string
	Failed     []string
}

type Fetcher interface {
	FetchAll(ctx context.Context, query string, sources []string) FetchResult
}

type Encoder interface {
	EncodeText(ctx context.Context, text string) ([]float32, error)
	EncodeImage(ctx context.Context, imageURL string, imageData []byte) ([]float32, error)
}

type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Index is the optional pre-built catalog index.
type Index interface {
	Search(ctx context.Context, vector []float32, limit int) ([]domain.IndexMatch, error)
}

type Options struct {
	DefaultTopK           int
	IndexLimit            int
	RerankDepth           int
	MaxConcurrentAnalysis int
	SnapshotTTL           time.Duration
}

func (o *Options) fill() {
	if o.DefaultTopK <= 0 {
		o.DefaultTopK = 10
	}

	if o.IndexLimit <= 0 {
		o.IndexLimit = 20
	}

	if o.RerankDepth <= 0 {
		o.RerankDepth = fusion.DefaultRerankDepth
	}

	if o.MaxConcurrentAnalysis <= 0 {
		o.MaxConcurrentAnalysis = 4
	}

	if o.SnapshotTTL <= 0 {
		o.SnapshotTTL = time.Hour
	}
}

type Service struct {
	fetcher   Fetcher
	encoder   Encoder
	images    ImageFetcher
	index     Index
	store     cache.Store
	sentiment *sentiment.Analyzer
	occasion  *occasion.Analyzer
	opts      Options
}

// NewService wires the pipeline. index may be nil when no catalog index
// is configured; store may be nil to disable snapshot caching.
func NewService(fetcher Fetcher, enc Encoder, images ImageFetcher, index Index, store cache.Store, opts Options) *Service {
	opts.fill()

	return &Service{
		fetcher:   fetcher,
		encoder:   enc,
		images:    images,
		index:     index,
		store:     store,
		sentiment: sentiment.NewAnalyzer(),
		occasion:  occasion.NewAnalyzer(),
		opts:      opts,
	}
}

var (
	ErrEmptyQuery         = errors.New("either text or image must be provided")
	ErrEncoderUnavailable = errors.New("embedding service unavailable")
)

// Search runs the full pipeline and returns ranked results with metadata.
func (s *Service) Search(ctx context.Context, req Request) (*domain.SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" && req.ImageBase64 == "" {
		return nil, ErrEmptyQuery
	}

	metrics.SearchRequests.Inc()
	started := time.Now()

	if req.TopK <= 0 {
		req.TopK = s.opts.DefaultTopK
	}

	if req.TextWeight == 0 && req.ImageWeight == 0 {
		req.TextWeight, req.ImageWeight = 0.3, 0.7
	}

	profile := occasion.Normalize(occasion.Merge(s.occasion.ParseContext(req.Query), req.Context))

	if req.UseCache && s.store != nil {
		if cached, ok := s.snapshot(ctx, req, profile); ok {
			return cached, nil
		}
	}

	queryVec, err := s.embedQuery(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoderUnavailable, err)
	}

	fetched := s.fetcher.FetchAll(ctx, req.Query, req.Sources)

	items, sentiments := s.collectItems(ctx, req, queryVec, fetched.Candidates)
	totalCandidates := len(items)

	items = dedup.Deduplicate(items)
	afterDedup := len(items)

	results := make([]domain.RankedResult, 0, len(items))
	embeddings := make(map[string][]float32, len(items))

	for _, item := range items {
		rr := domain.RankedResult{
			Candidate: item.Candidate,
			BaseScore: item.Score,
		}

		rr.SentimentBoost = 1.0

		if sc := sentiments[item.Candidate.ID]; req.EnableSentiment && sc != nil {
			rr.Sentiment = sc
			rr.SentimentBoost = sentiment.Boost(*sc, req.SentimentPref)
		}

		if req.EnableOccasion && !profile.IsEmpty() {
			occ := s.occasion.Score(item.Candidate, profile, item.Score)
			rr.Occasion = &occ
			rr.MatchTags = occ.MatchTags
		}

		rr.Score = fusion.Score(item.Score, rr.SentimentBoost, rr.Occasion)

		if item.Embedding != nil {
			embeddings[item.Candidate.ID] = item.Embedding
		}

		results = append(results, rr)
	}

	fusion.SortStable(results)

	reranked := false
	if req.EnableRerank {
		results, reranked = fusion.Rerank(queryVec, results, embeddings, s.opts.RerankDepth)
	}

	results = fusion.TopK(results, req.TopK)

	took := time.Since(started)
	metrics.SearchLatency.Observe(took.Seconds())

	out := &domain.SearchResult{
		Results: results,
		Meta: domain.SearchMeta{
			Query:            req.Query,
			TotalCandidates:  totalCandidates,
			AfterDedup:       afterDedup,
			Returned:         len(results),
			SourcesQueried:   fetched.Queried,
			SourcesFailed:    fetched.Failed,
			Context:          profile,
			Reranked:         reranked,
			SentimentApplied: req.EnableSentiment,
			OccasionApplied:  req.EnableOccasion && !profile.IsEmpty(),
			TookMs:           took.Milliseconds(),
		},
	}

	logger.Info("search done",
		"query", req.Query,
		"candidates", totalCandidates,
		"after_dedup", afterDedup,
		"returned", len(results),
		"reranked", reranked,
		"took_ms", took.Milliseconds(),
	)

	if req.UseCache && s.store != nil {
		s.storeSnapshot(ctx, req, profile, out)
	}

	return out, nil
}

// embedQuery builds the query vector: text, image, or their weighted
// fusion. The encoder is a hard dependency here; failures abort the
// search.
func (s *Service) embedQuery(ctx context.Context, req Request) ([]float32, error) {
	var textVec, imageVec []float32
	var err error

	if strings.TrimSpace(req.Query) != "" {
		textVec, err = s.encoder.EncodeText(ctx, req.Query)
		if err != nil {
			return nil, err
		}
	}

	if req.ImageBase64 != "" {
		data, decodeErr := base64.StdEncoding.DecodeString(req.ImageBase64)
		if decodeErr != nil {
			return nil, fmt.Errorf("invalid image payload: %w", decodeErr)
		}

		// The base64 payload doubles as the cache identifier for ad-hoc
		// query images.
		imageVec, err = s.encoder.EncodeImage(ctx, "query:"+req.ImageBase64, data)
		if err != nil {
			return nil, err
		}
	}

	return fusion.Normalize(fusionVec(textVec, imageVec, req.TextWeight, req.ImageWeight)), nil
}

// collectItems enriches every candidate concurrently: image download,
// perceptual hash, sentiment, embedding and base similarity. Per-candidate
// failures degrade that candidate instead of failing the search. Sentiment
// scores are returned separately keyed by candidate id so dedup can strip
// duplicate candidates without touching them.
func (s *Service) collectItems(ctx context.Context, req Request, queryVec []float32, candidates []domain.Candidate) ([]dedup.Item, map[string]*domain.SentimentScore) {
	if s.index != nil && len(queryVec) > 0 {
		candidates = append(candidates, s.indexCandidates(ctx, queryVec)...)
	}

	items := make([]dedup.Item, len(candidates))
	scores := make([]*domain.SentimentScore, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrentAnalysis)

	for i, candidate := range candidates {
		g.Go(func() error {
			items[i], scores[i] = s.analyzeCandidate(gctx, req, queryVec, candidate)

			return nil
		})
	}

	// Workers only record per-candidate degradation.
	_ = g.Wait()

	sentiments := make(map[string]*domain.SentimentScore, len(candidates))
	for i, item := range items {
		if scores[i] != nil {
			sentiments[item.Candidate.ID] = scores[i]
		}
	}

	return items, sentiments
}

func (s *Service) analyzeCandidate(ctx context.Context, req Request, queryVec []float32, candidate domain.Candidate) (dedup.Item, *domain.SentimentScore) {
	item := dedup.Item{Candidate: candidate}

	var sentimentScore *domain.SentimentScore

	var img image.Image
	var imgData []byte

	if candidate.ImageURL != "" {
		var err error

		imgData, err = s.images.Fetch(ctx, candidate.ImageURL)
		if err != nil {
			logger.Debug("image fetch failed", "id", candidate.ID, "url", candidate.ImageURL, "error", err)
		} else if img, err = decodeImage(imgData); err != nil {
			logger.Debug("image decode failed", "id", candidate.ID, "error", err)
			img = nil
		}
	}

	if img != nil {
		if hash, err := dedup.ComputeHash(img); err == nil {
			item.Hash = hash
		}

		if req.EnableSentiment {
			score := s.sentiment.Analyze(img)
			sentimentScore = &score
		}
	}

	if imgData != nil {
		if vec, err := s.encoder.EncodeImage(ctx, candidate.ImageURL, imgData); err == nil {
			item.Embedding = vec
		}
	}

	item.Score = s.baseSimilarity(ctx, queryVec, candidate, item.Embedding)

	return item, sentimentScore
}

// baseSimilarity scores a candidate against the query vector. The image
// embedding is preferred; candidates without one fall back to a text
// embedding of title and description, then to a rating prior.
func (s *Service) baseSimilarity(ctx context.Context, queryVec []float32, candidate domain.Candidate, imageVec []float32) float64 {
	if len(queryVec) > 0 && imageVec != nil {
		return clamp01(fusion.CosineSimilarity(queryVec, imageVec))
	}

	if len(queryVec) > 0 {
		text := strings.TrimSpace(candidate.Title + " " + candidate.Description)
		if text != "" {
			if vec, err := s.encoder.EncodeText(ctx, text); err == nil {
				return clamp01(fusion.CosineSimilarity(queryVec, vec))
			}
		}
	}

	return clamp01(candidate.Rating / 5)
}

// indexCandidates pulls extra candidates from the pre-built catalog index.
// Index failures only cost the extra candidates.
func (s *Service) indexCandidates(ctx context.Context, queryVec []float32) []domain.Candidate {
	matches, err := s.index.Search(ctx, queryVec, s.opts.IndexLimit)
	if err != nil {
		logger.Warn("catalog index search failed", "error", err)
		metrics.SourceFailures.WithLabelValues("index").Inc()

		return nil
	}

	candidates := make([]domain.Candidate, 0, len(matches))

	for _, m := range matches {
		candidate := domain.Candidate{
			ID:          "index_" + m.ID,
			Title:       m.Payload["title"],
			Description: m.Payload["description"],
			ImageURL:    m.Payload["image_url"],
			Category:    m.Payload["category"],
			Brand:       m.Payload["brand"],
			Source:      "CatalogIndex",
			BuyURL:      m.Payload["buy_url"],
		}

		fmt.Sscanf(m.Payload["price"], "%f", &candidate.Price)
		fmt.Sscanf(m.Payload["rating"], "%f", &candidate.Rating)

		candidates = append(candidates, candidate)
	}

	return candidates
}

// snapshotKey derives a stable cache key from everything that affects the
// result set.
func snapshotKey(req Request, profile domain.ContextProfile) string {
	payload, _ := json.Marshal(struct {
		Query   string                `json:"q"`
		Image   string                `json:"img,omitempty"`
		TopK    int                   `json:"k"`
		TW      float64               `json:"tw"`
		IW      float64               `json:"iw"`
		Sources []string              `json:"src,omitempty"`
		Sent    bool                  `json:"sent"`
		Occ     bool                  `json:"occ"`
		Rerank  bool                  `json:"rr"`
		Pref    string                `json:"pref,omitempty"`
		Context domain.ContextProfile `json:"ctx"`
	}{
		req.Query, req.ImageBase64, req.TopK, req.TextWeight, req.ImageWeight,
		req.Sources, req.EnableSentiment, req.EnableOccasion, req.EnableRerank,
		req.SentimentPref, profile,
	})

	return cache.Key(cache.NamespaceSearch, string(payload))
}

func (s *Service) snapshot(ctx context.Context, req Request, profile domain.ContextProfile) (*domain.SearchResult, bool) {
	raw, ok := s.store.Get(ctx, snapshotKey(req, profile))
	if !ok {
		metrics.CacheMisses.WithLabelValues(cache.NamespaceSearch).Inc()

		return nil, false
	}

	var result domain.SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(cache.NamespaceSearch).Inc()

	return &result, true
}

func (s *Service) storeSnapshot(ctx context.Context, req Request, profile domain.ContextProfile, result *domain.SearchResult) {
	cachedAt := time.Now().UTC()

	copied := *result
	copied.Meta.CachedAt = &cachedAt

	raw, err := json.Marshal(&copied)
	if err != nil {
		return
	}

	s.store.Set(ctx, snapshotKey(req, profile), raw, s.opts.SnapshotTTL)
}

func fusionVec(textVec, imageVec []float32, textWeight, imageWeight float64) []float32 {
	if textVec == nil {
		return imageVec
	}

	if imageVec == nil {
		return textVec
	}

	// Encoders for different modalities can disagree on dimensionality;
	// fusing mismatched vectors is meaningless, so keep the text one.
	if len(textVec) != len(imageVec) {
		logger.Warn("embedding dimension mismatch, skipping fusion",
			"text_dim", len(textVec), "image_dim", len(imageVec))

		return textVec
	}

	fused := make([]float32, len(textVec))
	for i := range fused {
		fused[i] = float32(textWeight)*textVec[i] + float32(imageWeight)*imageVec[i]
	}

	return fused
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))

	return img, err
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
