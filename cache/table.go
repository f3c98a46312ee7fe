package cache

import (
	"sync"
	"time"
)

type record[V any] struct {
	value      V
	hasValue   bool
	err        error
	fetchedAt  time.Time
	lastAccess time.Time
	inflight   bool
}

// table is a TTL cache with request coalescing and LRU eviction. Records
// with a fetch in flight are pinned and never evicted, so a completion
// always finds its slot.
type table[K comparable, V any] struct {
	mu   sync.Mutex
	ttl  time.Duration
	cap  int
	recs map[K]*record[V]
	now  func() time.Time
}

func newTable[K comparable, V any](ttl time.Duration, cap int) *table[K, V] {
	return &table[K, V]{
		ttl:  ttl,
		cap:  cap,
		recs: make(map[K]*record[V]),
		now:  time.Now,
	}
}

// acquire returns the current snapshot for k and whether the caller should
// start a fetch. At most one fetch per key is ever signalled: while a record
// is in flight, further acquires coalesce onto it. force requests a refresh
// even when the value is fresh.
func (t *table[K, V]) acquire(k K, force bool) (Entry[V], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	rec, ok := t.recs[k]
	if !ok {
		t.evictLocked()
		rec = &record[V]{lastAccess: now, inflight: true}
		t.recs[k] = rec
		return t.snapshotLocked(rec, now), true
	}
	rec.lastAccess = now

	if rec.inflight {
		return t.snapshotLocked(rec, now), false
	}

	fresh := rec.hasValue && rec.err == nil && now.Sub(rec.fetchedAt) < t.ttl
	if fresh && !force {
		return t.snapshotLocked(rec, now), false
	}

	rec.inflight = true
	return t.snapshotLocked(rec, now), true
}

// peek returns the snapshot for k without touching fetch state.
func (t *table[K, V]) peek(k K) Entry[V] {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.recs[k]
	if !ok {
		return Entry[V]{Status: StatusMissing}
	}
	return t.snapshotLocked(rec, t.now())
}

// complete records the result of a fetch. On success the value replaces the
// old one; on failure the last good value is kept and the error stored.
func (t *table[K, V]) complete(k K, v V, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.recs[k]
	if !ok {
		// Slot vanished; should not happen since in-flight records are
		// pinned, but a late completion must not recreate pressure.
		return
	}
	rec.inflight = false
	if err != nil {
		rec.err = err
		return
	}
	rec.value = v
	rec.hasValue = true
	rec.err = nil
	rec.fetchedAt = t.now()
}

func (t *table[K, V]) snapshotLocked(rec *record[V], now time.Time) Entry[V] {
	e := Entry[V]{
		Value:     rec.value,
		HasValue:  rec.hasValue,
		Err:       rec.err,
		FetchedAt: rec.fetchedAt,
	}
	switch {
	case rec.inflight:
		e.Status = StatusLoading
	case rec.err != nil:
		e.Status = StatusFailed
	case !rec.hasValue:
		e.Status = StatusMissing
	case now.Sub(rec.fetchedAt) < t.ttl:
		e.Status = StatusFresh
	default:
		e.Status = StatusStale
	}
	return e
}

// evictLocked drops the least recently used evictable record when the table
// is full. In-flight records do not count as evictable; if every record is
// in flight the table temporarily exceeds its capacity.
func (t *table[K, V]) evictLocked() {
	if len(t.recs) < t.cap {
		return
	}
	var (
		victim K
		oldest time.Time
		found  bool
	)
	for k, rec := range t.recs {
		if rec.inflight {
			continue
		}
		if !found || rec.lastAccess.Before(oldest) {
			victim, oldest, found = k, rec.lastAccess, true
		}
	}
	if found {
		delete(t.recs, victim)
	}
}

func (t *table[K, V]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.recs)
}
