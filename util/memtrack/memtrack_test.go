package memtrack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledIsNoop(t *testing.T) {
	Disable()
	base := Total()

	Add(4096)
	Remove(1024)
	require.Equal(t, base, Total())
}

func TestAddRemove(t *testing.T) {
	Enable()
	defer Disable()
	base := Total()

	Add(16384)
	Add(16384)
	require.Equal(t, base+32768, Total())

	Remove(16384)
	Remove(16384)
	require.Equal(t, base, Total())
}
