package catalog

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"shopLens/domain"
	"shopLens/pkg/logger"
	"shopLens/pkg/metrics"
)

// Aggregator fans a query out to every registered source concurrently. A
// failing source contributes nothing and is reported in the result; it
// never fails the whole search. Results are concatenated in registration
// order regardless of which source answered first.
type Aggregator struct {
	sources        []Source
	limitPerSource int
	sourceTimeout  time.Duration
}

type AggregateResult struct {
	Candidates []domain.Candidate
	Queried    []string
	Failed     []string
}

func NewAggregator(sources []Source, limitPerSource int, sourceTimeout time.Duration) *Aggregator {
	return &Aggregator{
		sources:        sources,
		limitPerSource: limitPerSource,
		sourceTimeout:  sourceTimeout,
	}
}

// FetchAll queries every source. An empty sourceFilter means all sources;
// otherwise only the named ones are queried, matched case-insensitively.
func (a *Aggregator) FetchAll(ctx context.Context, query string, sourceFilter []string) AggregateResult {
	selected := a.selectSources(sourceFilter)

	perSource := make([][]domain.Candidate, len(selected))
	failed := make([]bool, len(selected))

	g, gctx := errgroup.WithContext(ctx)

	for i, src := range selected {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(gctx, a.sourceTimeout)
			defer cancel()

			started := time.Now()

			candidates, err := src.Search(sctx, query, a.limitPerSource)
			if err != nil {
				logger.Warn("source fetch failed",
					"source", src.Name(),
					"query", query,
					"error", err,
				)
				metrics.SourceFailures.WithLabelValues(src.Name()).Inc()
				failed[i] = true

				return nil
			}

			logger.Debug("source fetch done",
				"source", src.Name(),
				"count", len(candidates),
				"took", time.Since(started),
			)
			perSource[i] = candidates

			return nil
		})
	}

	// Goroutines never return errors, only record failures.
	_ = g.Wait()

	result := AggregateResult{}

	for i, src := range selected {
		result.Queried = append(result.Queried, src.Name())

		if failed[i] {
			result.Failed = append(result.Failed, src.Name())

			continue
		}

		result.Candidates = append(result.Candidates, perSource[i]...)
	}

	return result
}

func (a *Aggregator) selectSources(filter []string) []Source {
	if len(filter) == 0 {
		return a.sources
	}

	wanted := make(map[string]bool, len(filter))
	for _, name := range filter {
		wanted[strings.ToLower(name)] = true
	}

	var selected []Source
	for _, src := range a.sources {
		if wanted[src.Name()] {
			selected = append(selected, src)
		}
	}

	return selected
}
