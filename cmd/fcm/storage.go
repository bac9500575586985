package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/fcmeans/blobstore"
	"github.com/hupe1980/fcmeans/blobstore/minio"
	"github.com/hupe1980/fcmeans/blobstore/s3"
)

// storeResolver maps locations to blob stores, creating one store per
// bucket. Plain paths go to the local store.
type storeResolver struct {
	mu     sync.Mutex
	local  blobstore.BlobStore
	stores map[string]blobstore.BlobStore
}

func newStoreResolver(local blobstore.BlobStore) *storeResolver {
	return &storeResolver{
		local:  local,
		stores: make(map[string]blobstore.BlobStore),
	}
}

// resolve returns the store holding raw and the blob name within it.
func (r *storeResolver) resolve(ctx context.Context, raw string) (blobstore.BlobStore, string, error) {
	loc, err := blobstore.ParseLocation(raw)
	if err != nil {
		return nil, "", err
	}
	if loc.Scheme == blobstore.SchemeLocal {
		return r.local, loc.Key, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := string(loc.Scheme) + "://" + loc.Bucket
	if store, ok := r.stores[id]; ok {
		return store, loc.Key, nil
	}

	var store blobstore.BlobStore
	switch loc.Scheme {
	case blobstore.SchemeS3:
		store, err = s3.New(ctx, loc.Bucket)
	case blobstore.SchemeMinio:
		store, err = minio.NewFromEnv(loc.Bucket)
	default:
		err = fmt.Errorf("%w: %s", blobstore.ErrInvalidLocation, raw)
	}
	if err != nil {
		return nil, "", err
	}

	r.stores[id] = store
	return store, loc.Key, nil
}
