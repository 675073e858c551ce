package search

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"shopLens/domain"
	"shopLens/internal/cache"
)

type mockFetcher struct {
	result FetchResult
	calls  int
}

func (m *mockFetcher) FetchAll(_ context.Context, _ string, _ []string) FetchResult {
	m.calls++

	return m.result
}

type mockEncoder struct {
	textVec  []float32
	imageVec []float32
	err      error
}

func (m *mockEncoder) EncodeText(_ context.Context, _ string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}

	return m.textVec, nil
}

func (m *mockEncoder) EncodeImage(_ context.Context, _ string, _ []byte) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}

	return m.imageVec, nil
}

type mockImages struct {
	data map[string][]byte
}

func (m *mockImages) Fetch(_ context.Context, url string) ([]byte, error) {
	if data, ok := m.data[url]; ok {
		return data, nil
	}

	return nil, errors.New("not found")
}

type mockIndex struct {
	matches []domain.IndexMatch
	err     error
}

func (m *mockIndex) Search(_ context.Context, _ []float32, _ int) ([]domain.IndexMatch, error) {
	return m.matches, m.err
}

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func candidate(id, title, imageURL string, rating float64) domain.Candidate {
	return domain.Candidate{
		ID:       id,
		Title:    title,
		ImageURL: imageURL,
		Rating:   rating,
		Source:   "Test",
	}
}

func newTestService(fetcher Fetcher, enc Encoder, images ImageFetcher, index Index, store cache.Store) *Service {
	return NewService(fetcher, enc, images, index, store, Options{
		DefaultTopK:           10,
		MaxConcurrentAnalysis: 2,
		SnapshotTTL:           time.Hour,
	})
}

func TestSearchRejectsEmptyRequest(t *testing.T) {
	svc := newTestService(&mockFetcher{}, &mockEncoder{}, &mockImages{}, nil, nil)

	if _, err := svc.Search(context.Background(), Request{}); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSearchEncoderDownRejectsRequest(t *testing.T) {
	svc := newTestService(&mockFetcher{}, &mockEncoder{err: errors.New("connection refused")}, &mockImages{}, nil, nil)

	_, err := svc.Search(context.Background(), Request{Query: "red dress"})
	if !errors.Is(err, ErrEncoderUnavailable) {
		t.Fatalf("expected ErrEncoderUnavailable, got %v", err)
	}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	img := testPNG(t)

	fetcher := &mockFetcher{result: FetchResult{
		Candidates: []domain.Candidate{
			candidate("far", "blue mug", "http://img/far", 4.0),
			candidate("near", "red dress", "http://img/near", 4.0),
		},
		Queried: []string{"test"},
	}}

	enc := &mockEncoder{
		textVec:  []float32{1, 0},
		imageVec: []float32{1, 0},
	}

	images := &mockImages{data: map[string][]byte{"http://img/near": img}}

	svc := newTestService(fetcher, enc, images, nil, nil)

	res, err := svc.Search(context.Background(), Request{Query: "red dress", TopK: 5})
	if err != nil {
		t.Fatal(err)
	}

	if res.Meta.TotalCandidates != 2 {
		t.Fatalf("expected 2 candidates, got %d", res.Meta.TotalCandidates)
	}

	if len(res.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(res.Results))
	}

	if res.Results[0].Score < res.Results[1].Score {
		t.Fatal("results must be sorted by score descending")
	}
}

func TestSearchSentimentAndOccasion(t *testing.T) {
	img := testPNG(t)

	fetcher := &mockFetcher{result: FetchResult{
		Candidates: []domain.Candidate{
			candidate("a", "elegant wedding dress", "http://img/a", 4.5),
		},
		Queried: []string{"test"},
	}}

	enc := &mockEncoder{textVec: []float32{1, 0}, imageVec: []float32{1, 0}}
	images := &mockImages{data: map[string][]byte{"http://img/a": img}}

	svc := newTestService(fetcher, enc, images, nil, nil)

	res, err := svc.Search(context.Background(), Request{
		Query:           "dress for a summer wedding",
		EnableSentiment: true,
		EnableOccasion:  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	r := res.Results[0]

	if r.Sentiment == nil {
		t.Fatal("expected sentiment score")
	}

	if r.SentimentBoost < 0.8 || r.SentimentBoost > 1.2 {
		t.Fatalf("sentiment boost out of range: %f", r.SentimentBoost)
	}

	if r.Occasion == nil {
		t.Fatal("expected occasion score")
	}

	if res.Meta.Context.Occasion != "wedding" {
		t.Fatalf("expected wedding context, got %q", res.Meta.Context.Occasion)
	}

	if res.Meta.Context.Season != "summer" {
		t.Fatalf("expected summer context, got %q", res.Meta.Context.Season)
	}

	if !res.Meta.OccasionApplied || !res.Meta.SentimentApplied {
		t.Fatalf("expected both scorers applied, got %+v", res.Meta)
	}
}

func TestSearchExplicitContextWins(t *testing.T) {
	fetcher := &mockFetcher{result: FetchResult{Queried: []string{"test"}}}
	enc := &mockEncoder{textVec: []float32{1, 0}}

	svc := newTestService(fetcher, enc, &mockImages{}, nil, nil)

	res, err := svc.Search(context.Background(), Request{
		Query:   "dress for a wedding",
		Context: domain.ContextProfile{Occasion: "party"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Meta.Context.Occasion != "party" {
		t.Fatalf("explicit occasion must win, got %q", res.Meta.Context.Occasion)
	}
}

func TestSearchDeduplicatesIdenticalImages(t *testing.T) {
	img := testPNG(t)

	fetcher := &mockFetcher{result: FetchResult{
		Candidates: []domain.Candidate{
			candidate("a", "red dress", "http://img/same", 4.0),
			candidate("b", "red dress copy", "http://img/same", 4.0),
		},
		Queried: []string{"test"},
	}}

	enc := &mockEncoder{textVec: []float32{1, 0}, imageVec: []float32{1, 0}}
	images := &mockImages{data: map[string][]byte{"http://img/same": img}}

	svc := newTestService(fetcher, enc, images, nil, nil)

	res, err := svc.Search(context.Background(), Request{Query: "red dress"})
	if err != nil {
		t.Fatal(err)
	}

	if res.Meta.TotalCandidates != 2 || res.Meta.AfterDedup != 1 {
		t.Fatalf("expected 2 -> 1 dedup, got %d -> %d", res.Meta.TotalCandidates, res.Meta.AfterDedup)
	}
}

func TestSearchSnapshotCache(t *testing.T) {
	fetcher := &mockFetcher{result: FetchResult{
		Candidates: []domain.Candidate{candidate("a", "red dress", "", 4.0)},
		Queried:    []string{"test"},
	}}

	enc := &mockEncoder{textVec: []float32{1, 0}}
	store := cache.NewMemoryStore(10)

	svc := newTestService(fetcher, enc, &mockImages{}, nil, store)

	req := Request{Query: "red dress", UseCache: true}

	first, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if first.Meta.CachedAt != nil {
		t.Fatal("fresh result must not be marked cached")
	}

	second, err := svc.Search(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if second.Meta.CachedAt == nil {
		t.Fatal("second result should come from cache")
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected single upstream fetch, got %d", fetcher.calls)
	}
}

func TestSearchIndexFailureDegrades(t *testing.T) {
	fetcher := &mockFetcher{result: FetchResult{
		Candidates: []domain.Candidate{candidate("a", "red dress", "", 4.0)},
		Queried:    []string{"test"},
	}}

	enc := &mockEncoder{textVec: []float32{1, 0}}
	index := &mockIndex{err: errors.New("index offline")}

	svc := newTestService(fetcher, enc, &mockImages{}, index, nil)

	res, err := svc.Search(context.Background(), Request{Query: "red dress"})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Results) != 1 {
		t.Fatalf("index failure must not fail the search, got %d results", len(res.Results))
	}
}

func TestSearchIndexContributesCandidates(t *testing.T) {
	fetcher := &mockFetcher{result: FetchResult{Queried: []string{"test"}}}
	enc := &mockEncoder{textVec: []float32{1, 0}}

	index := &mockIndex{matches: []domain.IndexMatch{
		{ID: "42", Score: 0.91, Payload: map[string]string{
			"title":  "indexed dress",
			"price":  "29.99",
			"rating": "4.5",
		}},
	}}

	svc := newTestService(fetcher, enc, &mockImages{}, index, nil)

	res, err := svc.Search(context.Background(), Request{Query: "red dress"})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Results) != 1 {
		t.Fatalf("expected the indexed candidate, got %d results", len(res.Results))
	}

	r := res.Results[0]

	if r.ID != "index_42" || r.Source != "CatalogIndex" {
		t.Fatalf("unexpected candidate %+v", r.Candidate)
	}

	if r.Price != 29.99 || r.Rating != 4.5 {
		t.Fatalf("payload numbers not parsed: %+v", r.Candidate)
	}
}

func TestFusionVecMismatchedDimensions(t *testing.T) {
	textVec := []float32{1, 0, 0}
	imageVec := []float32{0, 1}

	fused := fusionVec(textVec, imageVec, 0.3, 0.7)

	if len(fused) != len(textVec) {
		t.Fatalf("mismatched dimensions should fall back to the text vector, got len %d", len(fused))
	}

	for i := range textVec {
		if fused[i] != textVec[i] {
			t.Fatalf("fallback vector altered at %d: got %f, want %f", i, fused[i], textVec[i])
		}
	}

	if got := fusionVec(nil, imageVec, 0.3, 0.7); len(got) != len(imageVec) {
		t.Fatalf("missing text vector should keep the image vector, got len %d", len(got))
	}
}

func TestSearchTopKTruncates(t *testing.T) {
	var candidates []domain.Candidate
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, candidate(id, "dress "+id, "", 4.0))
	}

	fetcher := &mockFetcher{result: FetchResult{Candidates: candidates, Queried: []string{"test"}}}
	enc := &mockEncoder{textVec: []float32{1, 0}}

	svc := newTestService(fetcher, enc, &mockImages{}, nil, nil)

	res, err := svc.Search(context.Background(), Request{Query: "dress", TopK: 3})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res.Results))
	}

	if res.Meta.Returned != 3 {
		t.Fatalf("meta.returned should be 3, got %d", res.Meta.Returned)
	}
}
