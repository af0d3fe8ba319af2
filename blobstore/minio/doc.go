// Package minio stores blobs in MinIO or any S3-compatible server through the
// MinIO client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "dedup", "reports/")
//	w := report.NewWriter(store)
//
// It needs no AWS SDK, which makes it a fit for air-gapped deployments running
// Ceph, Garage or SeaweedFS.
package minio
