package blobstore

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Scheme names a storage backend.
type Scheme string

const (
	// SchemeLocal is the local file system.
	SchemeLocal Scheme = ""
	// SchemeS3 is Amazon S3.
	SchemeS3 Scheme = "s3"
	// SchemeMinio is a MinIO (or other S3-compatible) server.
	SchemeMinio Scheme = "minio"
)

// ErrInvalidLocation is returned for locations that cannot be parsed.
var ErrInvalidLocation = errors.New("blobstore: invalid location")

// Location identifies a blob: a bucket and key for object stores, a path
// (in Key) for the local file system.
type Location struct {
	Scheme Scheme
	Bucket string
	Key    string
}

// ParseLocation parses s3://bucket/key and minio://bucket/key URIs. Anything
// without a recognized scheme is a local path.
func ParseLocation(raw string) (Location, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		if raw == "" {
			return Location{}, fmt.Errorf("%w: empty", ErrInvalidLocation)
		}
		return Location{Scheme: SchemeLocal, Key: raw}, nil
	}

	switch s := Scheme(strings.ToLower(scheme)); s {
	case SchemeS3, SchemeMinio:
		u, err := url.Parse(string(s) + "://" + rest)
		if err != nil {
			return Location{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidLocation, raw)
		}
		return Location{Scheme: s, Bucket: u.Host, Key: key}, nil
	default:
		return Location{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocation, scheme)
	}
}

// String formats l in the form accepted by ParseLocation.
func (l Location) String() string {
	if l.Scheme == SchemeLocal {
		return l.Key
	}
	return string(l.Scheme) + "://" + l.Bucket + "/" + l.Key
}

// WithKey returns a copy of l pointing at key in the same bucket.
func (l Location) WithKey(key string) Location {
	l.Key = key
	return l
}
