// Package blobstore abstracts where datasets are read from and where
// results are written to.
//
// # Built-in Implementations
//
//   - LocalStore: local file system; reads are memory mapped, writes are
//     atomic (temp file + rename)
//   - MemoryStore: in-process, for tests
//   - s3.Store: Amazon S3 (and S3-compatible endpoints) with ranged reads
//     and multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// Locations given on the command line are parsed with ParseLocation:
//
//	s3://bucket/path/points.csv
//	minio://bucket/path/points.csv.zst
//	./points.csv
//
// Blobs are consumed front to back with NewReader:
//
//	blob, err := store.Open(ctx, "points.csv")
//	if err != nil { ... }
//	defer blob.Close()
//
//	r := blobstore.NewReader(ctx, blob)
//	defer r.Close()
//
//	tbl, err := dataset.Read(r)
package blobstore
