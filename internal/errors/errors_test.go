package errors_test

import (
	"fmt"
	"testing"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/stretchr/testify/require"
)

type statusErr struct{ code int }

func (e *statusErr) Error() string { return fmt.Sprintf("status %d", e.code) }

func TestWrapf(t *testing.T) {
	require.Nil(t, apperrors.Wrapf(nil, "load %s", "tokens"))

	err := apperrors.Wrapf(apperrors.ErrNotFound, "load %s", "tokens")
	require.EqualError(t, err, "load tokens: not found")
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	require.False(t, apperrors.Is(err, apperrors.ErrNoAccessToken))
}

func TestAs(t *testing.T) {
	err := apperrors.Wrapf(&statusErr{code: 401}, "request")

	var target *statusErr
	require.True(t, apperrors.As(err, &target))
	require.Equal(t, 401, target.code)
}
