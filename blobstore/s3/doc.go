// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	blob, err := store.Open(ctx, "points.csv")
//
// S3-compatible services are reached with WithEndpoint, which also switches
// to path-style addressing.
//
// # Features
//
//   - HeadObject size probing and ranged GetObject reads
//   - Streaming multipart uploads through the transfer manager
//   - Optional CRC32C integrity checksums on upload
package s3
