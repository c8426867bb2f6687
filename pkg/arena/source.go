package arena

import (
	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// Source supplies page backing blocks and takes them back when the
// owning arena is closed. Alloc must return a buffer of exactly the
// requested size.
type Source interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte) error
}

// HeapSource backs pages with ordinary Go heap memory. Free is a
// no-op since the garbage collector reclaims unreferenced pages.
type HeapSource struct{}

func (HeapSource) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (HeapSource) Free(buf []byte) error {
	return nil
}

// MmapSource backs pages with anonymous memory mappings and returns
// them to the operating system on Free. Like the arenas it serves, a
// source instance is not safe for concurrent use.
type MmapSource struct {
	mappings map[*byte]mmap.MMap
}

func NewMmapSource() *MmapSource {
	return &MmapSource{mappings: map[*byte]mmap.MMap{}}
}

func (s *MmapSource) Alloc(size int) ([]byte, error) {
	m, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to map %d byte anonymous region", size)
	}
	s.mappings[&m[0]] = m
	return m, nil
}

func (s *MmapSource) Free(buf []byte) error {
	if len(buf) == 0 {
		return errors.New("cannot free empty buffer")
	}

	m, ok := s.mappings[&buf[0]]
	if !ok {
		return errors.New("buffer was not mapped by this source")
	}

	delete(s.mappings, &buf[0])
	return errors.Wrap(m.Unmap(), "failed to unmap region")
}
