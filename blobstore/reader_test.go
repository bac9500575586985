package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainBlob supports ReadAt only.
type plainBlob struct {
	data []byte
}

func (b *plainBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return bytes.NewReader(b.data).ReadAt(p, off)
}

func (b *plainBlob) Size() int64 { return int64(len(b.data)) }

func (b *plainBlob) Close() error { return nil }

// rangeBlob records how it was read.
type rangeBlob struct {
	plainBlob
	ranges int
	body   *trackedBody
}

type trackedBody struct {
	io.Reader
	closed int
}

func (b *trackedBody) Close() error {
	b.closed++
	return nil
}

func (b *rangeBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	b.ranges++
	b.body = &trackedBody{Reader: bytes.NewReader(b.data[off : off+length])}
	return b.body, nil
}

func TestNewReader_Chunked(t *testing.T) {
	data := []byte(strings.Repeat("0123456789", DefaultChunkSize/5))
	blob := &plainBlob{data: data}

	r := NewReader(context.Background(), blob)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.NoError(t, r.Close())
}

func TestNewReader_Mappable(t *testing.T) {
	store := NewMemoryStore()
	store.Put("a.csv", []byte("x\n1\n"))

	blob, err := store.Open(context.Background(), "a.csv")
	require.NoError(t, err)

	r := NewReader(context.Background(), blob)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "x\n1\n", string(got))
	assert.NoError(t, r.Close())
}

func TestNewReader_Range(t *testing.T) {
	blob := &rangeBlob{plainBlob: plainBlob{data: []byte("a;b\n1;2\n")}}

	got, err := io.ReadAll(NewReader(context.Background(), blob))
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;2\n", string(got))
	assert.Equal(t, 1, blob.ranges)
	assert.Equal(t, 1, blob.body.closed)
}

func TestNewReader_RangeClosedEarly(t *testing.T) {
	blob := &rangeBlob{plainBlob: plainBlob{data: []byte("a;b\n1;2\n")}}
	r := NewReader(context.Background(), blob)

	buf := make([]byte, 2)
	_, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	require.NotNil(t, blob.body)
	assert.Equal(t, 0, blob.body.closed)

	require.NoError(t, r.Close())
	assert.Equal(t, 1, blob.body.closed)
	require.NoError(t, r.Close())
	assert.Equal(t, 1, blob.body.closed)

	_, err = r.Read(buf)
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestNewReader_EmptyRange(t *testing.T) {
	blob := &rangeBlob{}

	got, err := io.ReadAll(NewReader(context.Background(), blob))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, blob.ranges)
}

type failingBlob struct{ plainBlob }

var errBoom = errors.New("boom")

func (failingBlob) ReadAt(context.Context, []byte, int64) (int, error) { return 0, errBoom }

func TestNewReader_Error(t *testing.T) {
	blob := &failingBlob{plainBlob{data: []byte("abc")}}

	_, err := io.ReadAll(NewReader(context.Background(), blob))
	assert.ErrorIs(t, err, errBoom)
}
