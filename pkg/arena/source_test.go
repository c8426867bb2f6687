package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeapSource(t *testing.T) {
	src := HeapSource{}
	buf, err := src.Alloc(4096)
	require.NoError(t, err)
	require.Len(t, buf, 4096)
	require.NoError(t, src.Free(buf))
}

func TestMmapSource(t *testing.T) {
	src := NewMmapSource()
	buf, err := src.Alloc(TargetPageSize)
	require.NoError(t, err)
	require.Len(t, buf, TargetPageSize)

	buf[0] = 0xAA
	buf[len(buf)-1] = 0xBB
	require.Equal(t, byte(0xAA), buf[0])
	require.Equal(t, byte(0xBB), buf[len(buf)-1])

	require.Error(t, src.Free(make([]byte, 8)))
	require.Error(t, src.Free(nil))
	require.NoError(t, src.Free(buf))
}

func TestArenaOnMmapSource(t *testing.T) {
	a, err := New(&Options{AvgAllocSize: 128, Source: NewMmapSource()})
	require.NoError(t, err)

	b, err := a.Alloc(512)
	require.NoError(t, err)
	copy(b, "mapped")
	require.Equal(t, []byte("mapped"), b[:6])

	_, err = a.Alloc(a.MaxAllocSize())
	require.NoError(t, err)
	require.Equal(t, 2*a.PageSize(), a.MemoryUsage())

	require.NoError(t, a.Close())
}
