package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
)

// MemoryStore is a BlobStore held in memory. A published blob is never
// modified; Create replaces it as a whole on Close. MemoryStore is safe for
// concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]*memoryBlob
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]*memoryBlob)}
}

// Open returns the named blob.
func (s *MemoryStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b, ok := s.lookup(name); ok {
		return b, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Create returns a writer that publishes name on Close.
func (s *MemoryStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memoryWriter{store: s, name: name}, nil
}

// Put publishes a copy of data under name.
func (s *MemoryStore) Put(name string, data []byte) {
	s.publish(name, bytes.Clone(data))
}

// Get returns a copy of the named blob's content.
func (s *MemoryStore) Get(name string) ([]byte, bool) {
	b, ok := s.lookup(name)
	if !ok {
		return nil, false
	}
	return bytes.Clone(b.data), true
}

// List returns the sorted names starting with prefix.
func (s *MemoryStore) List(prefix string) []string {
	s.mu.RLock()
	names := slices.Sorted(maps.Keys(s.objects))
	s.mu.RUnlock()

	return slices.DeleteFunc(names, func(n string) bool {
		return !strings.HasPrefix(n, prefix)
	})
}

func (s *MemoryStore) lookup(name string) (*memoryBlob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[name]
	return b, ok
}

func (s *MemoryStore) publish(name string, data []byte) {
	s.mu.Lock()
	s.objects[name] = &memoryBlob{data: data}
	s.mu.Unlock()
}

type memoryBlob struct {
	data []byte
}

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return bytes.NewReader(b.data).ReadAt(p, off)
}

// Bytes makes memory blobs Mappable.
func (b *memoryBlob) Bytes() ([]byte, error) { return b.data, nil }

func (b *memoryBlob) Size() int64 { return int64(len(b.data)) }

func (b *memoryBlob) Close() error { return nil }

type memoryWriter struct {
	store  *MemoryStore
	name   string
	buf    bytes.Buffer
	closed bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, os.ErrClosed
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return os.ErrClosed
	}
	w.closed = true
	w.store.publish(w.name, w.buf.Bytes())
	return nil
}

func (w *memoryWriter) Sync() error { return nil }

// Abort drops the buffered content; name keeps its previous blob, if any.
func (w *memoryWriter) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.buf.Reset()
	return nil
}
