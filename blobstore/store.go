package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// BlobStore opens blobs for reading and creates them for writing.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens an existing blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Create creates (or replaces) a blob. The content becomes visible
	// under name only after a successful Close.
	Create(ctx context.Context, name string) (WritableBlob, error)
}

// Blob is a read-only handle to a blob.
type Blob interface {
	// ReadAt reads len(p) bytes at offset off with io.ReaderAt semantics.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)

	// Size returns the size of the blob in bytes.
	Size() int64

	io.Closer
}

// WritableBlob is a blob being written.
type WritableBlob interface {
	io.WriteCloser

	// Sync flushes buffered data to durable storage where supported.
	Sync() error
}

// Mappable is implemented by blobs whose content is addressable in memory.
type Mappable interface {
	// Bytes returns the content. The slice is valid until the blob is closed.
	Bytes() ([]byte, error)
}

// RangeReader is implemented by blobs that can stream a byte range with a
// single request.
type RangeReader interface {
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
}

// Aborter is implemented by writable blobs that can discard their content
// instead of publishing it.
type Aborter interface {
	Abort() error
}

// Discard abandons w. Blobs that support it are aborted; others are closed.
func Discard(w WritableBlob) error {
	if a, ok := w.(Aborter); ok {
		return a.Abort()
	}
	return w.Close()
}
