package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
)

// DefaultChunkSize is the read size NewReader uses for blobs that only
// support ReadAt.
const DefaultChunkSize = 1 << 20

// NewReader returns a sequential reader over the whole blob.
//
// Mappable blobs are read without copying, RangeReader blobs with a single
// streaming request, and all others in DefaultChunkSize ReadAt calls.
// Closing the reader releases a pending range response; it does not close
// the blob.
func NewReader(ctx context.Context, b Blob) io.ReadCloser {
	if m, ok := b.(Mappable); ok {
		if data, err := m.Bytes(); err == nil {
			return io.NopCloser(bytes.NewReader(data))
		}
	}
	if rr, ok := b.(RangeReader); ok {
		return &rangeReader{ctx: ctx, rr: rr, size: b.Size()}
	}
	return &chunkReader{ctx: ctx, blob: b, size: b.Size()}
}

// rangeReader opens the range lazily so that no request is made for a blob
// that is never read.
type rangeReader struct {
	ctx  context.Context
	rr   RangeReader
	size int64
	body io.ReadCloser
	err  error
}

func (r *rangeReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.body == nil {
		if r.size == 0 {
			r.err = io.EOF
			return 0, r.err
		}
		body, err := r.rr.ReadRange(r.ctx, 0, r.size)
		if err != nil {
			r.err = err
			return 0, err
		}
		r.body = body
	}

	n, err := r.body.Read(p)
	if err != nil {
		r.err = err
		_ = r.release()
	}
	return n, err
}

func (r *rangeReader) Close() error {
	if r.err == nil {
		r.err = os.ErrClosed
	}
	return r.release()
}

func (r *rangeReader) release() error {
	if r.body == nil {
		return nil
	}
	err := r.body.Close()
	r.body = nil
	return err
}

type chunkReader struct {
	ctx  context.Context
	blob Blob
	size int64
	off  int64
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.off >= r.size {
		return 0, io.EOF
	}
	if len(p) > DefaultChunkSize {
		p = p[:DefaultChunkSize]
	}
	if rem := r.size - r.off; int64(len(p)) > rem {
		p = p[:rem]
	}

	n, err := r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if errors.Is(err, io.EOF) && n > 0 {
		err = nil
	}
	return n, err
}

func (r *chunkReader) Close() error { return nil }
