// Package images downloads and decodes product images with a bounded
// concurrency budget shared across all in-flight searches.
package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/sync/semaphore"

	"shopLens/internal/cache"
	"shopLens/pkg/metrics"
)

const maxImageBytes = 10 << 20

type Downloader struct {
	httpClient *http.Client
	sem        *semaphore.Weighted
	store      cache.Store
	cacheTTL   time.Duration
}

func NewDownloader(timeout time.Duration, maxConcurrent int64, store cache.Store, cacheTTL time.Duration) *Downloader {
	if maxConcurrent <= 0 {
		maxConcurrent = 20
	}

	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		sem:        semaphore.NewWeighted(maxConcurrent),
		store:      store,
		cacheTTL:   cacheTTL,
	}
}

// Fetch returns the raw bytes of the image at url, from cache when
// possible. The semaphore bounds concurrent downloads process-wide.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := cache.Key(cache.NamespaceImage, url)

	if d.store != nil {
		if data, ok := d.store.Get(ctx, key); ok {
			metrics.CacheHits.WithLabelValues(cache.NamespaceImage).Inc()

			return data, nil
		}

		metrics.CacheMisses.WithLabelValues(cache.NamespaceImage).Inc()
	}

	if err := d.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer d.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty image body from %s", url)
	}

	if d.store != nil {
		d.store.Set(ctx, key, data, d.cacheTTL)
	}

	return data, nil
}

// FetchImage downloads and decodes an image in one step.
func (d *Downloader) FetchImage(ctx context.Context, url string) (image.Image, error) {
	data, err := d.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	return img, nil
}
