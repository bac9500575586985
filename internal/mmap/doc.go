// Package mmap maps files read-only into memory.
//
// Local datasets are parsed straight out of the mapping, so a file is read
// once by the kernel and never copied into a Go buffer first.
//
//	m, err := mmap.Open("points.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// On Unix the mapping uses mmap(2) and madvise(2). On Windows it uses
// CreateFileMapping/MapViewOfFile and Advise is a no-op.
package mmap
