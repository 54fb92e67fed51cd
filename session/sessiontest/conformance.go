// Package sessiontest holds behaviour checks shared by every session.Store implementation.
package sessiontest

import (
	"sync"
	"testing"

	"github.com/jrsteele09/go-storefront-client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreTests exercises the session.Store contract against stores built by newStore.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) session.Store) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		value, found, err := s.Get(session.KeyAccessToken)
		require.NoError(t, err)
		require.False(t, found)
		require.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(session.KeyAccessToken, "A1"))

		value, found, err := s.Get(session.KeyAccessToken)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "A1", value)
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(session.KeyRefreshToken, "R1"))
		require.NoError(t, s.Set(session.KeyRefreshToken, "R2"))

		value, _, err := s.Get(session.KeyRefreshToken)
		require.NoError(t, err)
		require.Equal(t, "R2", value)
	})

	t.Run("empty value is present", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(session.KeySessionID, ""))

		_, found, err := s.Get(session.KeySessionID)
		require.NoError(t, err)
		require.True(t, found)
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(session.KeyIsLoggedIn, "true"))
		require.NoError(t, s.Remove(session.KeyIsLoggedIn))

		_, found, err := s.Get(session.KeyIsLoggedIn)
		require.NoError(t, err)
		require.False(t, found)

		require.NoError(t, s.Remove(session.KeyIsLoggedIn), "removing a missing key")
	})

	t.Run("empty key rejected", func(t *testing.T) {
		s := newStore(t)
		require.ErrorIs(t, s.Set("", "x"), session.ErrEmptyKey)

		_, found, err := s.Get("")
		require.ErrorIs(t, err, session.ErrEmptyKey)
		require.False(t, found)

		require.ErrorIs(t, s.Remove(""), session.ErrEmptyKey)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Set(session.KeyAccessToken, "token"))
				_, _, err := s.Get(session.KeyAccessToken)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		value, found, err := s.Get(session.KeyAccessToken)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "token", value)
	})
}
