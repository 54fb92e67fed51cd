package fakeapi

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/utils"
	"github.com/jrsteele09/go-storefront-client/models"
)

type user struct {
	ID           string
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// identifier is the login name carried in the access token: the email, else the phone.
func (u *user) identifier() string {
	if u.Email != "" {
		return u.Email
	}
	return u.Phone
}

func (u *user) profile() models.Profile {
	return models.Profile{
		ID:           u.ID,
		Email:        optional(u.Email),
		Phone:        optional(u.Phone),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsRegistered: true,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// optional maps "" to a JSON null.
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return utils.Ptr(v)
}

// userRepo indexes users by id, email and phone.
type userRepo struct {
	lock   sync.RWMutex
	users  map[string]*user
	logins map[string]string // lowercased email or phone -> user id
}

func newUserRepo() *userRepo {
	return &userRepo{
		users:  make(map[string]*user),
		logins: make(map[string]string),
	}
}

// Create fails when the email or phone is already registered.
func (ur *userRepo) Create(u *user) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if u.Email != "" {
		if _, ok := ur.logins[loginKey(u.Email)]; ok {
			return fmt.Errorf("email already registered")
		}
	}
	if u.Phone != "" {
		if _, ok := ur.logins[loginKey(u.Phone)]; ok {
			return fmt.Errorf("phone already registered")
		}
	}

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	ur.users[u.ID] = u
	ur.index(u)
	return nil
}

// UpdatePhone re-indexes the user under a new phone number.
func (ur *userRepo) UpdatePhone(u *user, phone string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if phone == u.Phone {
		return nil
	}
	if phone != "" {
		if id, ok := ur.logins[loginKey(phone)]; ok && id != u.ID {
			return fmt.Errorf("phone already registered")
		}
	}
	if u.Phone != "" {
		delete(ur.logins, loginKey(u.Phone))
	}
	u.Phone = phone
	ur.index(u)
	return nil
}

func (ur *userRepo) Delete(id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(ur.users, id)
	delete(ur.logins, loginKey(u.Email))
	delete(ur.logins, loginKey(u.Phone))
	return nil
}

func (ur *userRepo) Get(id string) (*user, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

// GetByIdentifier finds a user by email or phone.
func (ur *userRepo) GetByIdentifier(identifier string) (*user, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.logins[loginKey(identifier)]
	if !ok || identifier == "" {
		return nil, apperrors.ErrNotFound
	}
	return ur.users[id], nil
}

// index must be called with the write lock held.
func (ur *userRepo) index(u *user) {
	if u.Email != "" {
		ur.logins[loginKey(u.Email)] = u.ID
	}
	if u.Phone != "" {
		ur.logins[loginKey(u.Phone)] = u.ID
	}
}

func loginKey(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// validatePassword requires at least 8 characters.
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func validateName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

func (s *Server) hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
