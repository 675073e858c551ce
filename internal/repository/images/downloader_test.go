package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"shopLens/internal/cache"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

func TestFetchCachesBytes(t *testing.T) {
	data := pngBytes(t)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(data)
	}))
	defer srv.Close()

	store := cache.NewMemoryStore(10)
	dl := NewDownloader(5*time.Second, 4, store, time.Hour)

	for i := 0; i < 3; i++ {
		got, err := dl.Fetch(context.Background(), srv.URL+"/img.png")
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, data) {
			t.Fatal("downloaded bytes do not match")
		}
	}

	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected 1 upstream download, got %d", hits)
	}
}

func TestFetchImageDecodes(t *testing.T) {
	data := pngBytes(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	dl := NewDownloader(5*time.Second, 4, nil, time.Hour)

	img, err := dl.FetchImage(context.Background(), srv.URL+"/img.png")
	if err != nil {
		t.Fatal(err)
	}

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dl := NewDownloader(5*time.Second, 4, nil, time.Hour)

	if _, err := dl.Fetch(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestFetchRespectsCancelledContext(t *testing.T) {
	dl := NewDownloader(5*time.Second, 1, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := dl.Fetch(ctx, "http://127.0.0.1:0/img.png"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
