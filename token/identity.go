package token

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
)

// Identity is the user described by an access token's payload. It is derived on demand and never stored.
type Identity struct {
	ID        string    `json:"id" yaml:"id"`
	Email     string    `json:"email" yaml:"email"`
	FirstName string    `json:"first_name" yaml:"first_name"`
	LastName  string    `json:"last_name" yaml:"last_name"`
	ExpiresAt time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// FullName joins the first and last name.
func (i *Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// DecodeIdentity reads the payload segment of a JWT without verifying its signature.
// The client cannot verify tokens; the backend does that on every request.
func DecodeIdentity(raw string) (*Identity, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "expected 3 segments, got %d", len(parts))
	}

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "payload encoding: %v", err)
	}

	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "payload json: %v", err)
	}
	if claims == nil {
		return nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "payload is not an object")
	}

	id := stringClaim(claims, "sub")
	if id == "" {
		id = stringClaim(claims, "user_id")
	}

	identity := &Identity{
		ID:        id,
		Email:     stringClaim(claims, "email"),
		FirstName: stringClaim(claims, "first_name"),
		LastName:  stringClaim(claims, "last_name"),
	}
	if exp, ok := claims["exp"].(float64); ok {
		identity.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return identity, nil
}

func stringClaim(claims map[string]any, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
