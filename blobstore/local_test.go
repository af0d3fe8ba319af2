package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/ppjoin/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	// 1. Put a blob
	blobName := "reports/run-001.ppj"
	data := []byte("hello world, this is a test report")

	require.NoError(t, store.Put(ctx, blobName, data))

	// Verify file exists on disk
	_, err := os.Stat(filepath.Join(tmpDir, "reports", "run-001.ppj"))
	require.NoError(t, err)

	// 2. Get
	got, err := store.Get(ctx, blobName)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// 3. Overwrite
	require.NoError(t, store.Put(ctx, blobName, []byte("v2")))
	got, err = store.Get(ctx, blobName)
	require.NoError(t, err)
	require.Equal(t, "v2", string(got))

	// 4. List
	require.NoError(t, store.Put(ctx, "reports/run-002.ppj", nil))
	require.NoError(t, store.Put(ctx, "other.bin", []byte("x")))

	names, err := store.List(ctx, "reports/")
	require.NoError(t, err)
	require.Equal(t, []string{"reports/run-001.ppj", "reports/run-002.ppj"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, blobName))
	require.NoError(t, store.Delete(ctx, blobName))

	_, err = store.Get(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_InvalidNames(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	store := NewLocalStore(filepath.Join(parent, "root"))

	outside := filepath.Join(parent, "outside.ppj")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	for _, name := range []string{"", "../outside.ppj", "a/../../outside.ppj", "/etc/passwd"} {
		assert.ErrorIs(t, store.Put(ctx, name, []byte("x")), ErrInvalidName, name)
		_, err := store.Get(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, store.Delete(ctx, name), ErrInvalidName, name)
	}

	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))

	require.NoError(t, store.Put(ctx, "a/../inside.ppj", []byte("ok")))
	got, err := store.Get(ctx, "inside.ppj")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestLocalBlobStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobStore_Faults(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	ffs := fs.NewFaultyFS(nil)
	store := NewLocalStore(tmpDir, WithFileSystem(ffs))

	require.NoError(t, store.Put(ctx, "keep.ppj", []byte("v1")))

	t.Run("Write", func(t *testing.T) {
		ffs.AddRule(tmpPrefix, fs.Fault{FailAfterBytes: 1})
		defer ffs.AddRule(tmpPrefix, fs.Fault{FailAfterBytes: -1})

		err := store.Put(ctx, "keep.ppj", []byte("v2"))
		assert.ErrorIs(t, err, fs.ErrInjected)
	})

	t.Run("Sync", func(t *testing.T) {
		ffs.AddRule(tmpPrefix, fs.Fault{FailAfterBytes: -1, FailOnSync: true})
		defer ffs.AddRule(tmpPrefix, fs.Fault{FailAfterBytes: -1})

		assert.ErrorIs(t, store.Put(ctx, "keep.ppj", []byte("v2")), fs.ErrInjected)
	})

	t.Run("Rename", func(t *testing.T) {
		ffs.AddRule("keep.ppj", fs.Fault{FailAfterBytes: -1, FailOnRename: true})
		defer ffs.AddRule("keep.ppj", fs.Fault{FailAfterBytes: -1})

		assert.ErrorIs(t, store.Put(ctx, "keep.ppj", []byte("v2")), fs.ErrInjected)
	})

	// Failed writes leave the old blob and no temp files behind.
	got, err := store.Get(ctx, "keep.ppj")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "b", data))
	require.NoError(t, store.Put(ctx, "a", []byte("x")))

	// The store keeps its own copy.
	data[0] = 'z'
	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, store.Delete(ctx, "b"))
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, store.Put(cctx, "c", nil), context.Canceled)
}

func TestCachingStore(t *testing.T) {
	inner := NewMemoryStore()
	store := NewCachingStore(inner, 1024)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "r1", []byte("report")))

	_, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "report", string(got))

	hits, misses := store.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, int64(6), store.MemoryUsage())

	// Writes invalidate the cached copy.
	require.NoError(t, store.Put(ctx, "r1", []byte("updated")))
	got, err = store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "updated", string(got))

	require.NoError(t, store.Delete(ctx, "r1"))
	_, err = store.Get(ctx, "r1")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

// gatedStore blocks Put until release is closed.
type gatedStore struct {
	*MemoryStore
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Put(ctx context.Context, name string, data []byte) error {
	close(g.entered)
	<-g.release
	return g.MemoryStore.Put(ctx, name, data)
}

func TestCachingStore_ReadDuringPut(t *testing.T) {
	ctx := context.Background()
	inner := &gatedStore{
		MemoryStore: NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	require.NoError(t, inner.MemoryStore.Put(ctx, "r", []byte("old")))

	store := NewCachingStore(inner, 1024)

	done := make(chan error, 1)
	go func() {
		done <- store.Put(ctx, "r", []byte("new"))
	}()
	<-inner.entered

	got, err := store.Get(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	close(inner.release)
	require.NoError(t, <-done)

	got, err = store.Get(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestCachingStore_MemoryLimit(t *testing.T) {
	inner := NewMemoryStore()
	store := NewCachingStore(inner, 1024, WithMemoryLimit(4), WithIOLimit(1<<20))
	ctx := context.Background()

	require.NoError(t, inner.Put(ctx, "big", []byte("too large")))

	_, err := store.Get(ctx, "big")
	require.NoError(t, err)
	_, err = store.Get(ctx, "big")
	require.NoError(t, err)

	hits, misses := store.Stats()
	assert.Zero(t, hits)
	assert.Equal(t, int64(2), misses)
	assert.Zero(t, store.MemoryUsage())
}
