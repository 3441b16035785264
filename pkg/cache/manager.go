// Package cache memoizes fetch results in two tiers: an in-process map and a
// persisted Store. Entries carry their own timestamp and ttl and are evicted
// lazily when read after expiry.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"storefront_api/metrics"
	"storefront_api/pkg/logger"
)

const (
	DefaultTTL    = 5 * time.Minute
	DefaultPrefix = "storefront_cache:"
	// SweepInterval is the minimum gap between sweeps of expired in-process entries.
	SweepInterval = time.Minute
)

// entry is the persisted form: {"data":…,"timestamp":<unix ms>,"ttl":<ms>}.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	TTL       int64           `json:"ttl"`
}

func (e entry) valid(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp < e.TTL
}

type memoryEntry struct {
	entry
	value interface{}
}

type Stats struct {
	MemoryHits    atomic.Uint64
	StoreHits     atomic.Uint64
	Misses        atomic.Uint64
	Expired       atomic.Uint64
	Sets          atomic.Uint64
	WriteFailures atomic.Uint64
	DroppedWrites atomic.Uint64
}

type StatsSnapshot struct {
	MemoryHits    uint64 `json:"memory_hits"`
	StoreHits     uint64 `json:"store_hits"`
	Misses        uint64 `json:"misses"`
	Expired       uint64 `json:"expired"`
	Sets          uint64 `json:"sets"`
	WriteFailures uint64 `json:"write_failures"`
	DroppedWrites uint64 `json:"dropped_writes"`
	MemoryEntries int    `json:"memory_entries"`
}

type Manager struct {
	mu     sync.Mutex
	memory map[string]memoryEntry
	store  Store
	prefix string
	ttl    time.Duration
	now    func() time.Time
	log    logger.Logger
	stats  Stats

	lastSweep time.Time
}

type Option func(*Manager)

// WithStore sets the persisted tier. Without it the Manager is memory only.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

func WithPrefix(prefix string) Option {
	return func(m *Manager) { m.prefix = prefix }
}

func WithDefaultTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(log logger.Logger) Option {
	return func(m *Manager) { m.log = logger.OrDiscard(log) }
}

func New(opts ...Option) *Manager {
	m := &Manager{
		memory: make(map[string]memoryEntry),
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		now:    time.Now,
		log:    logger.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached value for key, checking the in-process tier first and
// then the persisted tier. A persisted hit is promoted into the in-process tier.
func Get[T any](ctx context.Context, m *Manager, key string) (T, bool) {
	var zero T
	now := m.now()

	if value, ok := m.memoryGet(key, now); ok {
		if v, isT := value.value.(T); isT {
			m.stats.MemoryHits.Add(1)
			metrics.RecordCacheLookup("memory", "hit")
			return v, true
		}
		var v T
		if err := json.Unmarshal(value.Data, &v); err == nil {
			m.stats.MemoryHits.Add(1)
			metrics.RecordCacheLookup("memory", "hit")
			return v, true
		}
	}

	if m.store == nil {
		m.miss()
		return zero, false
	}

	raw, err := m.store.Get(ctx, m.prefix+key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.Warn("store read %s: %s", key, err)
		}
		m.miss()
		return zero, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		m.log.Warn("dropping unreadable entry %s: %s", key, err)
		_ = m.store.Delete(ctx, m.prefix+key)
		m.miss()
		return zero, false
	}
	if !e.valid(now) {
		m.stats.Expired.Add(1)
		metrics.RecordCacheLookup("store", "expired")
		if err := m.store.Delete(ctx, m.prefix+key); err != nil {
			m.log.Warn("evict %s: %s", key, err)
		}
		m.miss()
		return zero, false
	}

	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		m.log.Warn("entry %s does not decode into %T: %s", key, zero, err)
		m.miss()
		return zero, false
	}

	m.mu.Lock()
	m.memory[key] = memoryEntry{entry: e, value: v}
	m.mu.Unlock()

	m.stats.StoreHits.Add(1)
	metrics.RecordCacheLookup("store", "hit")
	return v, true
}

func (m *Manager) memoryGet(key string, now time.Time) (memoryEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.memory[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !value.valid(now) {
		delete(m.memory, key)
		m.stats.Expired.Add(1)
		metrics.RecordCacheLookup("memory", "expired")
		return memoryEntry{}, false
	}
	return value, true
}

// sweepLocked drops expired in-process entries that would otherwise stay until read.
func (m *Manager) sweepLocked(now time.Time) {
	m.lastSweep = now
	for key, value := range m.memory {
		if !value.valid(now) {
			delete(m.memory, key)
			m.stats.Expired.Add(1)
		}
	}
}

func (m *Manager) miss() {
	m.stats.Misses.Add(1)
	metrics.RecordCacheLookup("all", "miss")
}

// Set writes through both tiers. ttl <= 0 uses the default ttl. A persisted write
// that fails triggers a cleanup of the oldest half of the namespaced entries and
// one retry; if that fails too the value stays in the in-process tier only.
// The only error returned is a value that cannot be encoded as JSON.
func (m *Manager) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.ttl
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}

	now := m.now()
	e := entry{
		Data:      raw,
		Timestamp: now.UnixMilli(),
		TTL:       ttl.Milliseconds(),
	}

	m.mu.Lock()
	m.memory[key] = memoryEntry{entry: e, value: data}
	if now.Sub(m.lastSweep) >= SweepInterval {
		m.sweepLocked(now)
	}
	m.mu.Unlock()
	m.stats.Sets.Add(1)

	if m.store == nil {
		return nil
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	if err := m.store.Set(ctx, m.prefix+key, payload); err != nil {
		m.stats.WriteFailures.Add(1)
		m.log.Warn("store write %s failed, cleaning up: %s", key, err)
		removed := m.cleanup(ctx)

		if err := m.store.Set(ctx, m.prefix+key, payload); err != nil {
			m.stats.DroppedWrites.Add(1)
			metrics.RecordCacheWriteFailure("dropped")
			m.log.Warn("store write %s dropped after removing %d entries: %s", key, removed, err)
			return nil
		}
		metrics.RecordCacheWriteFailure("recovered")
	}
	return nil
}

// cleanup removes the oldest half (rounded up) of the namespaced persisted entries,
// ordered by their stored timestamp. Unreadable entries count as oldest.
func (m *Manager) cleanup(ctx context.Context) int {
	keys, err := m.store.Keys(ctx, m.prefix)
	if err != nil {
		m.log.Warn("list keys for cleanup: %s", err)
		return 0
	}

	type stamped struct {
		key       string
		timestamp int64
	}
	entries := make([]stamped, 0, len(keys))
	for _, key := range keys {
		var ts int64
		if raw, err := m.store.Get(ctx, key); err == nil {
			var e entry
			if json.Unmarshal(raw, &e) == nil {
				ts = e.Timestamp
			}
		}
		entries = append(entries, stamped{key: key, timestamp: ts})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].timestamp < entries[j].timestamp
	})

	toRemove := (len(entries) + 1) / 2
	removed := 0
	for _, e := range entries[:toRemove] {
		if err := m.store.Delete(ctx, e.key); err != nil {
			m.log.Warn("cleanup delete %s: %s", e.key, err)
			continue
		}
		removed++
	}
	return removed
}

func (m *Manager) Delete(ctx context.Context, key string) {
	m.mu.Lock()
	delete(m.memory, key)
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Delete(ctx, m.prefix+key); err != nil {
			m.log.Warn("store delete %s: %s", key, err)
		}
	}
}

// Clear empties the in-process tier and removes every namespaced persisted entry.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.memory = make(map[string]memoryEntry)
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	keys, err := m.store.Keys(ctx, m.prefix)
	if err != nil {
		return fmt.Errorf("list cache keys: %w", err)
	}
	if bulk, ok := m.store.(interface {
		DeleteMany(ctx context.Context, keys []string) error
	}); ok {
		return bulk.DeleteMany(ctx, keys)
	}
	for _, key := range keys {
		if err := m.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) Stats() StatsSnapshot {
	m.mu.Lock()
	entries := len(m.memory)
	m.mu.Unlock()

	return StatsSnapshot{
		MemoryHits:    m.stats.MemoryHits.Load(),
		StoreHits:     m.stats.StoreHits.Load(),
		Misses:        m.stats.Misses.Load(),
		Expired:       m.stats.Expired.Load(),
		Sets:          m.stats.Sets.Load(),
		WriteFailures: m.stats.WriteFailures.Load(),
		DroppedWrites: m.stats.DroppedWrites.Load(),
		MemoryEntries: entries,
	}
}
