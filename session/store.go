// Package session persists client-side session state (tokens, guest cart id,
// last viewed product) in a string key-value store.
package session

import (
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
)

// ErrEmptyKey is returned by every Store for an empty key.
var ErrEmptyKey = apperrors.Wrapf(apperrors.ErrInvalidArgument, "key is required")

// Keys owned by the API client.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyIsLoggedIn   = "isLoggedIn"
	KeyAPIBaseURL   = "apiBaseURL"
)

// Keys owned by callers of the client.
const (
	KeySessionID       = "sessionId"
	KeySelectedProduct = "selectedProduct"
	// KeyCart held the local-only cart before carts moved to the backend. Reserved, never written.
	KeyCart = "cart"
)

// Store is a string key-value store. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}
