package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"shopLens/domain"
)

// Cache key namespaces. Keys are md5 hashes of the identifier so that long
// URLs and query strings stay bounded.
const (
	NamespaceImage     = "image"
	NamespaceEmbedding = "embedding"
	NamespaceSearch    = "search"
)

// Store is the byte-oriented cache shared by the image downloader, the
// encoder client and the search service. Backend failures are reported as
// misses by callers, never as request failures.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (domain.CacheStats, error)
}

func Key(namespace, identifier string) string {
	sum := md5.Sum([]byte(identifier))

	return namespace + ":" + hex.EncodeToString(sum[:])
}
