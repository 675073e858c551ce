package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopLens/domain"
)

type stubSource struct {
	name       string
	candidates []domain.Candidate
	err        error
	delay      time.Duration
}

func (s *stubSource) Name() string {
	return s.name
}

func (s *stubSource) Search(ctx context.Context, _ string, _ int) ([]domain.Candidate, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if s.err != nil {
		return nil, s.err
	}

	return s.candidates, nil
}

func candidate(id, source string) domain.Candidate {
	return domain.Candidate{ID: id, Title: id, Source: source}
}

func TestFetchAllConcatenatesInRegistrationOrder(t *testing.T) {
	// The slower source is registered first; its results must still come
	// first in the output.
	agg := NewAggregator([]Source{
		&stubSource{name: "a", delay: 50 * time.Millisecond, candidates: []domain.Candidate{candidate("a1", "a"), candidate("a2", "a")}},
		&stubSource{name: "b", candidates: []domain.Candidate{candidate("b1", "b")}},
	}, 20, time.Second)

	result := agg.FetchAll(context.Background(), "dress", nil)

	got := make([]string, len(result.Candidates))
	for i, c := range result.Candidates {
		got[i] = c.ID
	}

	want := []string{"a1", "a2", "b1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFetchAllToleratesFailingSource(t *testing.T) {
	agg := NewAggregator([]Source{
		&stubSource{name: "a", err: errors.New("upstream down")},
		&stubSource{name: "b", candidates: []domain.Candidate{candidate("b1", "b")}},
	}, 20, time.Second)

	result := agg.FetchAll(context.Background(), "dress", nil)

	if len(result.Candidates) != 1 || result.Candidates[0].ID != "b1" {
		t.Fatalf("expected only b1, got %v", result.Candidates)
	}

	if len(result.Failed) != 1 || result.Failed[0] != "a" {
		t.Fatalf("expected failed=[a], got %v", result.Failed)
	}

	if len(result.Queried) != 2 {
		t.Fatalf("expected both sources queried, got %v", result.Queried)
	}
}

func TestFetchAllSourceFilter(t *testing.T) {
	agg := NewAggregator([]Source{
		&stubSource{name: "a", candidates: []domain.Candidate{candidate("a1", "a")}},
		&stubSource{name: "b", candidates: []domain.Candidate{candidate("b1", "b")}},
	}, 20, time.Second)

	result := agg.FetchAll(context.Background(), "dress", []string{"B"})

	if len(result.Candidates) != 1 || result.Candidates[0].ID != "b1" {
		t.Fatalf("expected only b1, got %v", result.Candidates)
	}

	if len(result.Queried) != 1 || result.Queried[0] != "b" {
		t.Fatalf("expected queried=[b], got %v", result.Queried)
	}
}

func TestFetchAllTimesOutSlowSource(t *testing.T) {
	agg := NewAggregator([]Source{
		&stubSource{name: "slow", delay: 500 * time.Millisecond, candidates: []domain.Candidate{candidate("s1", "slow")}},
		&stubSource{name: "fast", candidates: []domain.Candidate{candidate("f1", "fast")}},
	}, 20, 50*time.Millisecond)

	result := agg.FetchAll(context.Background(), "dress", nil)

	if len(result.Candidates) != 1 || result.Candidates[0].ID != "f1" {
		t.Fatalf("expected only f1, got %v", result.Candidates)
	}

	if len(result.Failed) != 1 || result.Failed[0] != "slow" {
		t.Fatalf("expected failed=[slow], got %v", result.Failed)
	}
}
