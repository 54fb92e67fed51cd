package fakeapi

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-storefront-client/models"
)

// currentUser must be called with s.mu held, behind requireAuth.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*user, bool) {
	claims := claimsFrom(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	u, err := s.users.Get(claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return nil, false
	}
	return u, true
}

func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u.profile())
}

func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	if req.FirstName != "" {
		if !validateName(req.FirstName) {
			writeError(w, http.StatusBadRequest, "invalid first name")
			return
		}
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		if !validateName(req.LastName) {
			writeError(w, http.StatusBadRequest, "invalid last name")
			return
		}
		u.LastName = req.LastName
	}
	if err := s.users.UpdatePhone(u, strings.TrimSpace(req.Phone)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u.UpdatedAt = NowTimeFunc()
	writeJSON(w, http.StatusOK, u.profile())
}

func (s *Server) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
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

	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	if !checkPasswordHash(req.CurrentPassword, u.PasswordHash) {
		writeError(w, http.StatusBadRequest, "current password is incorrect")
		return
	}
	u.PasswordHash = hash
	u.UpdatedAt = NowTimeFunc()
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "password changed successfully"})
}

// deleteProfileHandler removes the user and every refresh token issued to them.
func (s *Server) deleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	if err := s.users.Delete(u.ID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for tok, userID := range s.refreshTokens {
		if userID == u.ID {
			delete(s.refreshTokens, tok)
		}
	}
	delete(s.carts, userOwner(u.ID))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "account deleted successfully"})
}
