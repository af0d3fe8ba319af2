// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("reports/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	w := report.NewWriter(store)
//	err = w.Write(ctx, "run-2024-06-01", rep)
//
// # Features
//
//   - Multipart uploads for large reports
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints and path-style addressing for S3-compatible services
package s3
