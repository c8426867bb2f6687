package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMin(t *testing.T) {
	require.Equal(t, 1, Min(1))
	require.Equal(t, 1, Min(3, 1, 2))
	require.Equal(t, -5, Min(0, -5, 7))
	require.Equal(t, uint16(4), Min(uint16(9), uint16(4)))
}

func TestMax(t *testing.T) {
	require.Equal(t, 1, Max(1))
	require.Equal(t, 3, Max(3, 1, 2))
	require.Equal(t, 7, Max(0, -5, 7))
	require.Equal(t, uint16(9), Max(uint16(9), uint16(4)))
}
