// Package minio provides a blobstore.BlobStore backed by the MinIO client.
//
// It works with MinIO and other S3-compatible servers (Ceph, Garage,
// SeaweedFS) without pulling in the AWS SDK configuration chain.
//
//	store, err := minio.New("localhost:9000", "datasets",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blob, err := store.Open(ctx, "points.csv")
//
// NewFromEnv reads the endpoint and credentials from MINIO_ENDPOINT,
// MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_SECURE.
package minio
