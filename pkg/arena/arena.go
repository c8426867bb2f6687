// Package arena implements a linear (bump-pointer) memory arena. It
// hands out variable sized byte regions from large, sequentially
// consumed pages and releases everything at once when the arena is
// closed, trading per-object bookkeeping for near-zero allocation
// cost. Typical use is building many short-lived objects during a
// bounded phase of work.
package arena

import (
	"unsafe"

	"github.com/pkg/errors"

	"linear-arena/util/helpers"
	"linear-arena/util/logger"
	"linear-arena/util/memtrack"
)

const (
	// TargetPageSize is the page size aimed for by the sizing policy,
	// chosen to match typical virtual memory page granularity.
	TargetPageSize = 16 * 1024

	// MaxPageSize caps the page size a hint may produce.
	MaxPageSize = 1 << 30

	// a page must hold at least this many hinted objects, so that a
	// pathologically large hint still yields a workable page
	minObjectCount = 4
)

var (
	// ErrOversizedAlloc is returned when a single allocation exceeds
	// the usable capacity of one page.
	ErrOversizedAlloc = errors.New("allocation exceeds max allocation size")

	// ErrClosed is returned by allocations on a closed arena.
	ErrClosed = errors.New("arena is closed")

	// ErrHugeAvgAllocSize is returned when the size hint would produce
	// pages larger than MaxPageSize.
	ErrHugeAvgAllocSize = errors.New("average allocation size hint is too large")
)

// Arena owns a chain of fixed size pages and a bump cursor within the
// tail page. It is not safe for concurrent use; callers either hold
// their own lock or keep one arena per goroutine.
type Arena struct {
	pageSize     int
	maxAllocSize int

	source Source

	head    *page // first page of the chain
	current *page // tail page, the only page ever written to
	cursor  int   // next free offset within current
	closed  bool
}

// New computes the page size once from opts and returns an empty
// arena. No page is allocated until the first Alloc.
func New(opts *Options) (*Arena, error) {
	if opts == nil {
		opts = &Options{}
	}

	source := opts.Source
	if source == nil {
		source = HeapSource{}
	}

	pageSize := TargetPageSize
	if opts.AvgAllocSize > 0 {
		// a page holds at least minObjectCount hinted objects, so the
		// hint alone bounds the page size
		if opts.AvgAllocSize > (MaxPageSize-pageHeaderSize)/minObjectCount {
			return nil, errors.Wrapf(ErrHugeAvgAllocSize,
				"hint of %d bytes implies pages beyond the %d byte cap",
				opts.AvgAllocSize, MaxPageSize)
		}
		usable := TargetPageSize - pageHeaderSize
		count := helpers.Max(usable/opts.AvgAllocSize, minObjectCount)
		pageSize = count*opts.AvgAllocSize + pageHeaderSize
	}

	return &Arena{
		pageSize:     pageSize,
		maxAllocSize: pageSize - pageHeaderSize,
		source:       source,
	}, nil
}

// Alloc reserves size contiguous bytes inside some page and returns a
// slice aliasing arena memory, with len == cap == size. The region
// stays valid and unmoved until Close. Bytes are not zeroed beyond
// what the page source guarantees, and no alignment is applied beyond
// natural placement; callers needing alignment pad their own size.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if a.closed {
		return nil, errors.Wrap(ErrClosed, "alloc")
	}
	if size < 0 {
		return nil, errors.Errorf("invalid allocation size %d", size)
	}
	if size > a.maxAllocSize {
		return nil, errors.Wrapf(ErrOversizedAlloc,
			"%d exceeds max size %d", size, a.maxAllocSize)
	}

	if err := a.ensureNext(size); err != nil {
		return nil, err
	}

	off := a.cursor
	a.cursor += size
	return a.current.buf[off:a.cursor:a.cursor], nil
}

// AllocCopy copies src into the arena and returns the arena-backed
// copy. Fails like Alloc when src is larger than MaxAllocSize.
func (a *Arena) AllocCopy(src []byte) ([]byte, error) {
	b, err := a.Alloc(len(src))
	if err != nil {
		return nil, err
	}
	copy(b, src)
	return b, nil
}

// ensureNext appends a fresh page when there is no current page or
// the current page cannot take size more bytes. Unused bytes left in
// the superseded page are abandoned, never reused.
func (a *Arena) ensureNext(size int) error {
	if a.current != nil && a.cursor+size <= a.current.end() {
		return nil
	}

	buf, err := a.source.Alloc(a.pageSize)
	if err != nil {
		return errors.Wrap(err, "failed to allocate page")
	}
	memtrack.Add(a.pageSize)
	logger.L.Debugf("arena: grew by one %d byte page", a.pageSize)

	p := &page{buf: buf}
	if a.current != nil {
		a.current.next = p
	}
	a.current = p
	if a.head == nil {
		a.head = p
	}
	a.cursor = p.start()
	return nil
}

// RewindTo retracts the bump cursor to the start of b, a slice
// previously returned by Alloc, making the space from b onward
// reusable. Rewinding across pages is unsupported: when b does not
// lie inside the current page the call does nothing, so speculative
// rewinds never need a success check.
func (a *Arena) RewindTo(b []byte) {
	if a.current == nil || len(b) == 0 {
		return
	}

	addr := uintptr(unsafe.Pointer(&b[0]))
	base := uintptr(unsafe.Pointer(&a.current.buf[0]))
	if addr >= base+uintptr(a.current.start()) && addr < base+uintptr(a.current.end()) {
		a.cursor = int(addr - base)
	}
}

// MemoryUsage returns the total bytes currently reserved across all
// pages by walking the chain.
func (a *Arena) MemoryUsage() int {
	usage := 0
	for p := a.head; p != nil; p = p.next {
		usage += a.pageSize
	}
	return usage
}

// PageSize returns the fixed size of every page of this arena.
func (a *Arena) PageSize() int {
	return a.pageSize
}

// MaxAllocSize returns the largest single allocation the arena can
// ever satisfy, one page's usable capacity.
func (a *Arena) MaxAllocSize() int {
	return a.maxAllocSize
}

// Close releases every page in link order back to the source. All
// regions returned by Alloc become invalid; any cleanup the caller's
// objects need must happen before Close, since the arena only tracks
// raw bytes. Close is idempotent.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	var firstErr error
	for p := a.head; p != nil; p = p.next {
		if err := a.source.Free(p.buf); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "failed to free page")
		}
		memtrack.Remove(a.pageSize)
	}

	a.head = nil
	a.current = nil
	a.cursor = 0
	return firstErr
}
