// Package encoder talks to the external embedding service. Text and image
// inputs map into one shared vector space, so a text query can score image
// derived product vectors directly.
package encoder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"shopLens/business/fusion"
	"shopLens/internal/cache"
	"shopLens/pkg/metrics"
)

var ErrEmptyEmbedding = errors.New("encoder returned empty embedding")

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	store      cache.Store
	cacheTTL   time.Duration
}

func NewClient(baseURL, apiKey string, timeout time.Duration, store cache.Store, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		cacheTTL:   cacheTTL,
	}
}

type encodeRequest struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

type encodeResponse struct {
	Embedding []float32 `json:"embedding"`
	Dimension int       `json:"dimension"`
}

// EncodeText returns the normalized embedding for a piece of text.
// Embeddings are cached by input, so repeated product descriptions only
// hit the service once.
func (c *Client) EncodeText(ctx context.Context, text string) ([]float32, error) {
	key := cache.Key(cache.NamespaceEmbedding, "text:"+text)

	if vec, ok := c.cachedVector(ctx, key); ok {
		return vec, nil
	}

	vec, err := c.encode(ctx, "/encode/text", encodeRequest{Text: text})
	if err != nil {
		return nil, err
	}

	c.storeVector(ctx, key, vec)

	return vec, nil
}

// EncodeImage returns the normalized embedding for raw image bytes.
func (c *Client) EncodeImage(ctx context.Context, imageURL string, imageData []byte) ([]float32, error) {
	key := cache.Key(cache.NamespaceEmbedding, "image:"+imageURL)

	if vec, ok := c.cachedVector(ctx, key); ok {
		return vec, nil
	}

	payload := encodeRequest{Image: base64.StdEncoding.EncodeToString(imageData)}

	vec, err := c.encode(ctx, "/encode/image", payload)
	if err != nil {
		return nil, err
	}

	c.storeVector(ctx, key, vec)

	return vec, nil
}

func (c *Client) encode(ctx context.Context, path string, payload encodeRequest) ([]float32, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("encoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

		return nil, fmt.Errorf("encoder returned status %d", resp.StatusCode)
	}

	var decoded encodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("encoder response decode failed: %w", err)
	}

	if len(decoded.Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}

	return fusion.Normalize(decoded.Embedding), nil
}

func (c *Client) cachedVector(ctx context.Context, key string) ([]float32, bool) {
	if c.store == nil {
		return nil, false
	}

	raw, ok := c.store.Get(ctx, key)
	if !ok {
		metrics.CacheMisses.WithLabelValues(cache.NamespaceEmbedding).Inc()

		return nil, false
	}

	vec, err := DecodeVector(raw)
	if err != nil {
		return nil, false
	}

	metrics.CacheHits.WithLabelValues(cache.NamespaceEmbedding).Inc()

	return vec, true
}

func (c *Client) storeVector(ctx context.Context, key string, vec []float32) {
	if c.store == nil {
		return
	}

	c.store.Set(ctx, key, EncodeVector(vec), c.cacheTTL)
}

// EncodeVector packs a float32 slice into little-endian bytes for caching.
func EncodeVector(vec []float32) []byte {
	out := make([]byte, len(vec)*4)
	for i, v := range vec {
		bits := math.Float32bits(v)
		out[i*4] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}

	return out
}

func DecodeVector(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, errors.New("malformed vector bytes")
	}

	vec := make([]float32, len(raw)/4)
	for i := range vec {
		bits := uint32(raw[i*4]) |
			uint32(raw[i*4+1])<<8 |
			uint32(raw[i*4+2])<<16 |
			uint32(raw[i*4+3])<<24
		vec[i] = math.Float32frombits(bits)
	}

	return vec, nil
}
