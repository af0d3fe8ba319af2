package blobstore

import (
	"context"
	"slices"
	"sync"

	"github.com/hupe1980/ppjoin/internal/cache"
	"github.com/hupe1980/ppjoin/internal/resource"
)

// CachingStore wraps a BlobStore and keeps recently read blobs in memory.
// Writes and deletes go to the inner store and invalidate the cached copy.
type CachingStore struct {
	inner BlobStore
	cache *cache.LRU
	rc    *resource.Controller

	// epoch advances on every write; a read only fills the cache when no
	// write finished while it was in flight.
	mu    sync.Mutex
	epoch uint64
}

// CachingOption configures a CachingStore.
type CachingOption func(*cachingOptions)

type cachingOptions struct {
	memoryLimit int64
	ioLimit     int64
}

// WithMemoryLimit caps the bytes this store may hold in memory. Inserts that
// would exceed it are not cached. 0 means the capacity alone bounds the cache.
func WithMemoryLimit(bytes int64) CachingOption {
	return func(o *cachingOptions) {
		o.memoryLimit = bytes
	}
}

// WithIOLimit throttles traffic to the inner store. Writes wait for budget
// before they start. Reads learn their size only once done, so they are
// charged afterwards and the wait delays the caller's next read instead.
func WithIOLimit(bytesPerSec int64) CachingOption {
	return func(o *cachingOptions) {
		o.ioLimit = bytesPerSec
	}
}

// NewCachingStore creates a new CachingStore.
// capacity is the cache size in bytes and defaults to 64MB if <= 0.
func NewCachingStore(inner BlobStore, capacity int64, optFns ...CachingOption) *CachingStore {
	if capacity <= 0 {
		capacity = 64 << 20
	}

	var o cachingOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   o.memoryLimit,
		IOLimitBytesPerSec: o.ioLimit,
	})

	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity, rc),
		rc:    rc,
	}
}

func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	s.epoch++
	s.cache.Remove(name)
	s.mu.Unlock()
}

func (s *CachingStore) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Put writes through to the inner store.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	s.invalidate(name)
	defer s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

// Get serves a blob from the cache, reading it from the inner store on a miss.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if b, ok := s.cache.Get(name); ok {
		return slices.Clone(b), nil
	}

	epoch := s.currentEpoch()
	b, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.rc.AcquireIO(ctx, len(b)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.cache.Set(name, slices.Clone(b))
	}
	s.mu.Unlock()
	return b, nil
}

// Delete removes the blob from the inner store and the cache.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	defer s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

// List delegates to the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hits and misses.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

// MemoryUsage returns the bytes currently cached.
func (s *CachingStore) MemoryUsage() int64 {
	return s.rc.MemoryUsage()
}
