package cache

import (
	"context"
	"sync"
	"time"

	"shopLens/domain"
)

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *memoryEntry
	next      *memoryEntry
}

// MemoryStore is an LRU cache with per-entry TTL. Expired entries are
// dropped lazily on access. The doubly linked list keeps most recently
// used entries at the head.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	head       *memoryEntry
	tail       *memoryEntry
	maxEntries int
	bytes      int64
	hits       int64
	misses     int64
	evicted    int64
	now        func() time.Time
}

func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 10000
	}

	return &MemoryStore{
		entries:    make(map[string]*memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		s.misses++

		return nil, false
	}

	if s.now().After(entry.expiresAt) {
		s.remove(entry)
		s.misses++

		return nil, false
	}

	s.moveToFront(entry)
	s.hits++

	return entry.value, true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A non-positive ttl means the entry is already expired; storing it
	// would only leave a stale value visible within the same clock tick.
	if ttl <= 0 {
		if entry, ok := s.entries[key]; ok {
			s.remove(entry)
		}

		return
	}

	if entry, ok := s.entries[key]; ok {
		s.bytes += int64(len(value)) - int64(len(entry.value))
		entry.value = value
		entry.expiresAt = s.now().Add(ttl)
		s.moveToFront(entry)

		return
	}

	entry := &memoryEntry{
		key:       key,
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	s.entries[key] = entry
	s.bytes += int64(len(value))
	s.pushFront(entry)

	for len(s.entries) > s.maxEntries {
		s.remove(s.tail)
		s.evicted++
	}
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*memoryEntry)
	s.head = nil
	s.tail = nil
	s.bytes = 0

	return nil
}

func (s *MemoryStore) Stats(_ context.Context) (domain.CacheStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.CacheStats{
		Backend: "memory",
		Entries: int64(len(s.entries)),
		Bytes:   s.bytes,
		Hits:    s.hits,
		Misses:  s.misses,
		Evicted: s.evicted,
	}, nil
}

func (s *MemoryStore) pushFront(entry *memoryEntry) {
	entry.prev = nil
	entry.next = s.head

	if s.head != nil {
		s.head.prev = entry
	}

	s.head = entry

	if s.tail == nil {
		s.tail = entry
	}
}

func (s *MemoryStore) moveToFront(entry *memoryEntry) {
	if s.head == entry {
		return
	}

	s.unlink(entry)
	s.pushFront(entry)
}

func (s *MemoryStore) remove(entry *memoryEntry) {
	if entry == nil {
		return
	}

	s.unlink(entry)
	delete(s.entries, entry.key)
	s.bytes -= int64(len(entry.value))
}

func (s *MemoryStore) unlink(entry *memoryEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		s.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		s.tail = entry.prev
	}
}
