package cache

import (
	"context"
	"strconv"
	"testing"
	"time"
)

func TestKeyIsNamespacedAndStable(t *testing.T) {
	a := Key(NamespaceImage, "https://example.com/a.jpg")
	b := Key(NamespaceImage, "https://example.com/a.jpg")
	c := Key(NamespaceEmbedding, "https://example.com/a.jpg")

	if a != b {
		t.Fatalf("same identifier produced different keys: %s vs %s", a, b)
	}

	if a == c {
		t.Fatalf("different namespaces produced the same key: %s", a)
	}

	if len(a) != len(NamespaceImage)+1+32 {
		t.Fatalf("unexpected key shape: %s", a)
	}
}

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("value"), time.Minute)

	got, ok := store.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit")
	}

	if string(got) != "value" {
		t.Fatalf("got %q, want %q", got, "value")
	}

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	store.Set(ctx, "k", []byte("value"), time.Minute)

	now = now.Add(2 * time.Minute)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if stats.Entries != 0 {
		t.Fatalf("expected expired entry to be removed, got %d entries", stats.Entries)
	}
}

func TestMemoryStoreZeroTTLMeansAbsent(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("value"), 0)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss for entry stored with zero ttl")
	}

	// A zero ttl on an existing key must drop the old value too.
	store.Set(ctx, "k", []byte("value"), time.Minute)
	store.Set(ctx, "k", []byte("newer"), 0)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected zero ttl overwrite to remove the entry")
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if stats.Entries != 0 || stats.Bytes != 0 {
		t.Fatalf("expected no residue from zero ttl writes, got %+v", stats)
	}
}

func TestMemoryStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		store.Set(ctx, "k"+strconv.Itoa(i), []byte{byte(i)}, time.Minute)
	}

	// Touch k0 so k1 becomes the least recently used.
	if _, ok := store.Get(ctx, "k0"); !ok {
		t.Fatal("expected hit for k0")
	}

	store.Set(ctx, "k3", []byte{3}, time.Minute)

	if _, ok := store.Get(ctx, "k1"); ok {
		t.Fatal("expected k1 to be evicted")
	}

	for _, key := range []string{"k0", "k2", "k3"} {
		if _, ok := store.Get(ctx, key); !ok {
			t.Fatalf("expected %s to survive eviction", key)
		}
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("value"), time.Minute)

	if err := store.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss after clear")
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if stats.Entries != 0 || stats.Bytes != 0 {
		t.Fatalf("expected empty stats after clear, got %+v", stats)
	}
}

func TestMemoryStoreUpdatesByteAccounting(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("12345"), time.Minute)
	store.Set(ctx, "k", []byte("123"), time.Minute)

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if stats.Bytes != 3 {
		t.Fatalf("expected 3 bytes tracked, got %d", stats.Bytes)
	}
}
