package fakeapi

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// accessClaims carries both "sub" and "user_id" so clients reading either claim find the user.
type accessClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

// signer signs and verifies HS256 tokens.
type signer struct {
	secret []byte
}

func newSigner(secret string) *signer {
	return &signer{secret: []byte(secret)}
}

func (h *signer) Sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token with HMAC: %w", err)
	}
	return signed, nil
}

func (h *signer) GetVerificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}

// issueAccessToken must be called with s.mu held.
func (s *Server) issueAccessToken(u *user) (string, error) {
	now := NowTimeFunc()
	claims := &accessClaims{
		UserID:    u.ID,
		Email:     u.identifier(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := s.signer.Sign(claims)
	if err != nil {
		return "", err
	}
	s.accessTokens[claims.ID] = true
	return signed, nil
}

// issueRefreshToken must be called with s.mu held. Refresh tokens are opaque random hex.
func (s *Server) issueRefreshToken(userID string) (string, error) {
	tokenBytes := make([]byte, s.refreshLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	s.refreshTokens[tokenStr] = userID
	return tokenStr, nil
}

func (s *Server) validateAccessToken(raw string) (*accessClaims, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.accessTokens[claims.ID] {
		return nil, fmt.Errorf("token revoked")
	}
	if _, err := s.users.Get(claims.UserID); err != nil {
		return nil, fmt.Errorf("user no longer exists")
	}
	return claims, nil
}
