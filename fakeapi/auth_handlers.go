package fakeapi

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-storefront-client/models"
)

const (
	accessTokenExpiresIn = 86400
	resetCodeTTL         = time.Hour
)

type passwordReset struct {
	code      string
	expiresAt time.Time
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch {
	case req.Email == "" && req.Phone == "":
		writeError(w, http.StatusBadRequest, "email or phone is required")
		return
	case !validateName(req.FirstName) || !validateName(req.LastName):
		writeError(w, http.StatusBadRequest, "invalid first name or last name")
		return
	case req.Email != "" && !strings.Contains(req.Email, "@"):
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if err := validatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	now := NowTimeFunc()
	u := &user{
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.users.Create(u); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	accessToken, refreshToken, err := s.issueTokens(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	profile := u.profile()
	writeJSON(w, http.StatusCreated, models.RegisterResponse{
		TokenResponse: models.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    accessTokenExpiresIn,
		},
		ID:           profile.ID,
		Email:        profile.Email,
		Phone:        profile.Phone,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		IsRegistered: profile.IsRegistered,
		CreatedAt:    profile.CreatedAt,
	})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.GetByIdentifier(req.Email)
	if err != nil || !checkPasswordHash(req.Password, u.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	accessToken, refreshToken, err := s.issueTokens(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	profile := u.profile()
	writeJSON(w, http.StatusOK, models.LoginResponse{
		TokenResponse: models.TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    accessTokenExpiresIn,
		},
		User: &models.UserSummary{
			ID:        profile.ID,
			Email:     profile.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		},
	})
}

// issueTokens must be called with s.mu held.
func (s *Server) issueTokens(u *user) (access, refresh string, err error) {
	if access, err = s.issueAccessToken(u); err != nil {
		return "", "", err
	}
	if refresh, err = s.issueRefreshToken(u.ID); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// refreshTokenHandler returns a new access token. The refresh token is not rotated.
func (s *Server) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.refreshTokens[req.RefreshToken]
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	u, err := s.users.Get(userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	accessToken, err := s.issueAccessToken(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: accessToken, ExpiresIn: accessTokenExpiresIn})
}

// logoutHandler is stateless: JWTs cannot be withdrawn, the client drops them.
func (s *Server) logoutHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "logged out successfully"})
}

func (s *Server) requestPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	identifier := req.Email
	if identifier == "" {
		identifier = req.Phone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.GetByIdentifier(identifier)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user not found")
		return
	}

	code, err := generateResetCode()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.resets[u.ID] = passwordReset{code: code, expiresAt: NowTimeFunc().Add(resetCodeTTL)}

	s.logger.Debug().Str("user_id", u.ID).Msg("password reset code issued")
	writeJSON(w, http.StatusOK, models.MessageResponse{
		Message:   "reset code sent to your email",
		ExpiresIn: int(resetCodeTTL.Seconds()),
	})
}

func (s *Server) verifyResetCodeHandler(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyResetCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	identifier := req.Email
	if identifier == "" {
		identifier = req.Phone
	}
	if err := validatePassword(req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := s.hashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.GetByIdentifier(identifier)
	if err != nil {
		writeError(w, http.StatusBadRequest, "user not found")
		return
	}
	reset, ok := s.resets[u.ID]
	switch {
	case !ok || reset.code != req.ResetCode:
		writeError(w, http.StatusBadRequest, "invalid reset code")
		return
	case NowTimeFunc().After(reset.expiresAt):
		writeError(w, http.StatusBadRequest, "reset code expired")
		return
	}

	delete(s.resets, u.ID)
	u.PasswordHash = hash
	u.UpdatedAt = NowTimeFunc()
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "password updated successfully", Redirect: "/login"})
}

// generateResetCode returns six random digits.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
