// Package store provides a concurrency-safe expiring map used as the
// memoization backend.
//
// Every entry shares the single time-to-live fixed at construction. Expired
// entries are removed lazily when observed by a read, and additionally by a
// background sweep so that keys written once and never read again do not
// accumulate.
//
// The store guarantees the safety of each individual operation under
// concurrent use. It does not make a read-then-write sequence atomic; that
// composite operation belongs to the caller (the call coordinator's
// single-flight protocol).
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL is used when New is given a non-positive TTL.
const DefaultTTL = time.Minute

// DefaultSweepInterval is the default period of the background sweep.
const DefaultSweepInterval = time.Minute

type config struct {
	sweepInterval time.Duration
	onEvict       func(key string)
	log           *zap.Logger
}

// Option configures a Store.
type Option func(*config)

// WithSweepInterval sets the period of the background sweep that removes
// expired entries independent of reads. Defaults to DefaultSweepInterval.
func WithSweepInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.sweepInterval = d
		}
	}
}

// WithEvictFunc registers a callback invoked with the key of every entry
// removed because its TTL elapsed, whether by lazy eviction on read or by
// the background sweep. The callback runs outside the store's lock and must
// not block. Explicit Delete calls do not trigger it.
func WithEvictFunc(fn func(key string)) Option {
	return func(c *config) { c.onEvict = fn }
}

// WithLogger sets the logger used for sweep diagnostics. Defaults to a
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

type entry struct {
	value   any
	expires time.Time
}

// Store is a keyed map of values with uniform expiration. The zero value is
// not usable; construct with [New].
type Store struct {
	ctx    context.Context
	cancel context.CancelFunc
	ttl    time.Duration
	cfg    config

	mu      sync.Mutex
	entries map[string]*entry

	wg   sync.WaitGroup
	once sync.Once
}

// New returns a Store whose entries expire ttl after insertion. A
// non-positive ttl falls back to DefaultTTL. The background sweep stops when
// parent is cancelled or Close is called.
func New(parent context.Context, ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cfg := config{
		sweepInterval: DefaultSweepInterval,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, cancel := context.WithCancel(parent)
	s := &Store{
		ctx:     ctx,
		cancel:  cancel,
		ttl:     ttl,
		cfg:     cfg,
		entries: make(map[string]*entry),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// TTL reports the store's fixed time-to-live.
func (s *Store) TTL() time.Duration { return s.ttl }

// Get returns the value stored under key. An entry whose expiry has passed
// is treated as absent and removed on observation.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	if e.expires.Before(time.Now()) {
		delete(s.entries, key)
		s.mu.Unlock()
		if s.cfg.onEvict != nil {
			s.cfg.onEvict(key)
		}
		return nil, false
	}
	v := e.value
	s.mu.Unlock()
	return v, true
}

// Put inserts or overwrites the entry for key with a fresh expiry.
func (s *Store) Put(key string, val any) {
	s.mu.Lock()
	s.entries[key] = &entry{value: val, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

// Delete removes the entry for key if present. It is a no-op otherwise and
// never triggers the evict callback.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len reports the number of entries currently held, including entries whose
// expiry has passed but which have not been swept yet.
func (s *Store) Len() int {
	s.mu.Lock()
	n := len(s.entries)
	s.mu.Unlock()
	return n
}

// Close stops the background sweep and waits for it to exit. It is
// idempotent and safe to call concurrently.
func (s *Store) Close() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

func (s *Store) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes every expired entry. Evict callbacks run after the lock is
// released so a slow callback never stalls readers.
func (s *Store) sweep() {
	now := time.Now()
	var expired []string
	s.mu.Lock()
	for key, e := range s.entries {
		if e.expires.Before(now) {
			delete(s.entries, key)
			expired = append(expired, key)
		}
	}
	s.mu.Unlock()
	if len(expired) == 0 {
		return
	}
	s.cfg.log.Debug("swept expired entries", zap.Int("count", len(expired)))
	if s.cfg.onEvict != nil {
		for _, key := range expired {
			s.cfg.onEvict(key)
		}
	}
}
