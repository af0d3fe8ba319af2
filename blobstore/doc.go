// Package blobstore provides storage for persisted match reports.
//
// BlobStore is the interface for writing and reading whole named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic writes via rename
//   - MemoryStore: in-memory, for tests
//   - CachingStore: read-through LRU in front of another store
//   - s3.Store: Amazon S3 with multipart uploads for large reports
//   - minio.Store: MinIO and other S3-compatible servers
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Put(ctx, name, data) error         // Atomic write
//	    Get(ctx, name) ([]byte, error)     // ErrNotFound if missing
//	    Delete(ctx, name) error            // Missing blobs are not an error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
