package dataset

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a stream compression format.
type Codec uint8

const (
	// CodecNone means the stream is stored as is.
	CodecNone Codec = iota
	// CodecZstd is Zstandard (.zst).
	CodecZstd
	// CodecLZ4 is the LZ4 frame format (.lz4).
	CodecLZ4
	// CodecGzip is gzip (.gz).
	CodecGzip
)

var extensions = map[string]Codec{
	".zst": CodecZstd,
	".lz4": CodecLZ4,
	".gz":  CodecGzip,
}

// CodecFor returns the codec implied by the extension of name.
func CodecFor(name string) Codec {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

func (c Codec) String() string {
	switch c {
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	case CodecGzip:
		return "gzip"
	default:
		return "none"
	}
}

// Decompress wraps r in a decoder chosen by the extension of name. The
// returned reader must be closed; closing it does not close r.
func Decompress(name string, r io.Reader) (io.ReadCloser, error) {
	switch CodecFor(name) {
	case CodecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CodecGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	default:
		return io.NopCloser(r), nil
	}
}

// Compress wraps w in an encoder chosen by the extension of name. Close
// flushes the encoder; it does not close w.
func Compress(name string, w io.Writer) (io.WriteCloser, error) {
	switch CodecFor(name) {
	case CodecZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		return enc, nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	case CodecGzip:
		return gzip.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
