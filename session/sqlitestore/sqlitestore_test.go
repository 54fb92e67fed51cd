package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/session"
	"github.com/jrsteele09/go-storefront-client/session/sessiontest"
	"github.com/jrsteele09/go-storefront-client/session/sqlitestore"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *sqlitestore.Store {
	t.Helper()
	s, err := sqlitestore.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	sessiontest.RunStoreTests(t, func(t *testing.T) session.Store {
		return openStore(t, ":memory:")
	})
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := sqlitestore.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Set(session.KeyAccessToken, "A1"))
	require.NoError(t, s.Close())

	reopened := openStore(t, path)
	value, found, err := reopened.Get(session.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "A1", value)
}

func TestStore_UpdatedAt(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	sqlitestore.NowTimeFunc = func() time.Time { return fixed }
	t.Cleanup(func() { sqlitestore.NowTimeFunc = time.Now })

	s := openStore(t, ":memory:")
	require.NoError(t, s.Set(session.KeyIsLoggedIn, "true"))

	at, err := s.UpdatedAt(session.KeyIsLoggedIn)
	require.NoError(t, err)
	require.True(t, fixed.Equal(at))

	_, err = s.UpdatedAt(session.KeySessionID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
