// Package vectorstore adapts the pre-built product index in Qdrant. The
// index is optional; when configured it contributes candidates alongside
// the live catalog sources.
package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"shopLens/domain"
)

type Config struct {
	URL            string
	CollectionName string
	APIKey         string
}

type Client struct {
	client         *qdrant.Client
	collectionName string
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}

	parsedURL := cfg.URL
	if !strings.HasPrefix(parsedURL, "http://") && !strings.HasPrefix(parsedURL, "https://") {
		parsedURL = "https://" + parsedURL
	}

	u, err := url.Parse(parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse qdrant url: %w", err)
	}

	host := u.Hostname()

	port := 6334
	if u.Port() != "" {
		p, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}

		port = p
	}

	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Client{
		client:         qdrantClient,
		collectionName: cfg.CollectionName,
	}, nil
}

// Search returns the closest indexed products to the query vector. Payload
// string fields are carried through so the caller can rebuild a candidate.
func (c *Client) Search(ctx context.Context, vector []float32, limit int) ([]domain.IndexMatch, error) {
	limitUint64 := uint64(limit)

	points, err := c.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limitUint64,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}

	matches := make([]domain.IndexMatch, 0, len(points))

	for _, point := range points {
		match := domain.IndexMatch{
			Score:   float64(point.Score),
			Payload: make(map[string]string),
		}

		if point.Id != nil {
			if uuid := point.Id.GetUuid(); uuid != "" {
				match.ID = uuid
			} else if num := point.Id.GetNum(); num != 0 {
				match.ID = fmt.Sprintf("%d", num)
			}
		}

		for k, v := range point.Payload {
			switch val := v.Kind.(type) {
			case *qdrant.Value_StringValue:
				match.Payload[k] = val.StringValue
			case *qdrant.Value_IntegerValue:
				match.Payload[k] = strconv.FormatInt(val.IntegerValue, 10)
			case *qdrant.Value_DoubleValue:
				match.Payload[k] = strconv.FormatFloat(val.DoubleValue, 'f', -1, 64)
			case *qdrant.Value_BoolValue:
				match.Payload[k] = strconv.FormatBool(val.BoolValue)
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
