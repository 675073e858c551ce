package dedup

import (
	"testing"

	"shopLens/domain"
)

func item(id, hash string, score float64) Item {
	return Item{
		Candidate: domain.Candidate{ID: id},
		Score:     score,
		Hash:      hash,
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Candidate.ID
	}

	return out
}

func TestHashDistance(t *testing.T) {
	if got := HashDistance("0000000000000000", "0000000000000000"); got != 0 {
		t.Fatalf("identical hashes should have distance 0, got %d", got)
	}

	// 0xff differs from 0x00 in 8 bits.
	if got := HashDistance("00000000000000ff", "0000000000000000"); got != 8 {
		t.Fatalf("expected distance 8, got %d", got)
	}

	if got := HashDistance("not-hex", "0000000000000000"); got != 64 {
		t.Fatalf("malformed hash should be maximally distant, got %d", got)
	}
}

func TestDeduplicateByHashKeepsFirstPosition(t *testing.T) {
	// b is within distance 5 of a (1 bit apart) but scores lower.
	items := []Item{
		item("a", "0000000000000000", 0.9),
		item("x", "ffffffffffffffff", 0.5),
		item("b", "0000000000000001", 0.4),
	}

	got := Deduplicate(items)

	want := []string{"a", "x"}
	if g := ids(got); len(g) != 2 || g[0] != want[0] || g[1] != want[1] {
		t.Fatalf("got %v, want %v", g, want)
	}
}

func TestDeduplicateHigherScoreReplacesInPlace(t *testing.T) {
	items := []Item{
		item("a", "0000000000000000", 0.4),
		item("x", "ffffffffffffffff", 0.5),
		item("b", "0000000000000001", 0.9),
	}

	got := Deduplicate(items)

	// b wins the cluster but takes a's position.
	want := []string{"b", "x"}
	if g := ids(got); len(g) != 2 || g[0] != want[0] || g[1] != want[1] {
		t.Fatalf("got %v, want %v", g, want)
	}
}

func TestDeduplicateMissingHashPassesThrough(t *testing.T) {
	items := []Item{
		item("a", "", 0.9),
		item("b", "", 0.9),
		item("c", "0000000000000000", 0.5),
	}

	got := Deduplicate(items)

	if len(got) != 3 {
		t.Fatalf("items without hashes must not be deduplicated, got %v", ids(got))
	}
}

func TestDeduplicateByEmbedding(t *testing.T) {
	a := item("a", "", 0.9)
	a.Embedding = []float32{1, 0, 0}

	b := item("b", "", 0.8)
	b.Embedding = []float32{0.999, 0.01, 0}

	c := item("c", "", 0.7)
	c.Embedding = []float32{0, 1, 0}

	got := Deduplicate([]Item{a, b, c})

	want := []string{"a", "c"}
	if g := ids(got); len(g) != 2 || g[0] != want[0] || g[1] != want[1] {
		t.Fatalf("got %v, want %v", g, want)
	}
}

func TestDeduplicateNilEmbeddingSkipsEmbeddingStage(t *testing.T) {
	a := item("a", "", 0.9)
	a.Embedding = []float32{1, 0, 0}

	b := item("b", "", 0.8)

	got := Deduplicate([]Item{a, b})

	if len(got) != 2 {
		t.Fatalf("nil embedding must pass through, got %v", ids(got))
	}
}
