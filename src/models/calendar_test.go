package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsBetweenMarketHours(t *testing.T) {
	session := &Calendar{
		Date:        "2024-06-03",
		MarketOpen:  time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC),
		MarketClose: time.Date(2024, 6, 3, 16, 0, 0, 0, time.UTC),
	}

	t.Run("open during the session, open bound inclusive", func(t *testing.T) {
		require.True(t, session.IsBetweenMarketHours(session.MarketOpen))
		require.True(t, session.IsBetweenMarketHours(time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("closed before the open and from the close onward", func(t *testing.T) {
		require.False(t, session.IsBetweenMarketHours(time.Date(2024, 6, 3, 9, 29, 59, 0, time.UTC)))
		require.False(t, session.IsBetweenMarketHours(session.MarketClose))
		require.False(t, session.IsBetweenMarketHours(time.Date(2024, 6, 3, 20, 0, 0, 0, time.UTC)))
	})
}
