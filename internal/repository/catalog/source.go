package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopLens/domain"
)

// Source is one upstream product catalog. Search returns up to limit
// candidates already filtered for query relevance.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error)
}

var httpClient = &http.Client{Timeout: 15 * time.Second}

// getJSON fetches url and decodes the JSON body into out. Non-2xx statuses
// are errors so the aggregator can count them as source failures.
func getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
