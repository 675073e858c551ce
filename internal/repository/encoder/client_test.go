package encoder

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopLens/internal/cache"
)

func newTestServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++

		json.NewEncoder(w).Encode(encodeResponse{
			Embedding: []float32{3, 4},
			Dimension: 2,
		})
	}))
}

func TestEncodeTextNormalizesAndCaches(t *testing.T) {
	hits := 0
	srv := newTestServer(t, &hits)
	defer srv.Close()

	store := cache.NewMemoryStore(10)
	client := NewClient(srv.URL, "", 5*time.Second, store, time.Hour)

	vec, err := client.EncodeText(context.Background(), "red dress")
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(float64(vec[0])-0.6) > 1e-6 || math.Abs(float64(vec[1])-0.8) > 1e-6 {
		t.Fatalf("expected normalized [0.6 0.8], got %v", vec)
	}

	// Second call must come from cache.
	if _, err := client.EncodeText(context.Background(), "red dress"); err != nil {
		t.Fatal(err)
	}

	if hits != 1 {
		t.Fatalf("expected 1 upstream call, got %d", hits)
	}
}

func TestEncodeTextUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 5*time.Second, nil, time.Hour)

	if _, err := client.EncodeText(context.Background(), "red dress"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestVectorRoundTrip(t *testing.T) {
	vec := []float32{0.1, -2.5, 3.75}

	decoded, err := DecodeVector(EncodeVector(vec))
	if err != nil {
		t.Fatal(err)
	}

	for i := range vec {
		if decoded[i] != vec[i] {
			t.Fatalf("round trip mismatch at %d: %f != %f", i, decoded[i], vec[i])
		}
	}

	if _, err := DecodeVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for malformed bytes")
	}
}
