package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundQuantity(t *testing.T) {
	require.Equal(t, 500.0, RoundQuantity(500.4))
	require.Equal(t, 501.0, RoundQuantity(500.5))
	require.Equal(t, -501.0, RoundQuantity(-500.5))
	require.Equal(t, 0.0, RoundQuantity(math.NaN()))
}

func TestClip(t *testing.T) {
	require.Equal(t, 5.0, Clip(10, 0, 5))
	require.Equal(t, 0.0, Clip(-10, 0, 5))
	require.Equal(t, 3.0, Clip(3, 0, 5))
}
