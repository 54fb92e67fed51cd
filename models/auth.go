// Package models holds the JSON request and response bodies of the storefront REST API.
package models

import "time"

// TokenResponse is the token part of the register, login and refresh responses.
type TokenResponse struct {
	// AccessToken is the JWT sent as "Authorization: Bearer <access_token>".
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`

	// RefreshToken is opaque and long-lived. Refresh responses omit it; the old one stays valid.
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`

	// ExpiresIn is the access token lifetime in seconds. A hint only; the client never acts on it.
	ExpiresIn int `json:"expires_in,omitempty" yaml:"expires_in,omitempty"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type RegisterResponse struct {
	TokenResponse `yaml:",inline"`
	ID            string    `json:"id" yaml:"id"`
	Email         *string   `json:"email" yaml:"email"`
	Phone         *string   `json:"phone" yaml:"phone"`
	FirstName     string    `json:"first_name" yaml:"first_name"`
	LastName      string    `json:"last_name" yaml:"last_name"`
	IsRegistered  bool      `json:"is_registered" yaml:"is_registered"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// LoginRequest carries an email or a phone number in the email field.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	TokenResponse `yaml:",inline"`
	User          *UserSummary `json:"user,omitempty" yaml:"user,omitempty"`
}

type UserSummary struct {
	ID        string  `json:"id" yaml:"id"`
	Email     *string `json:"email" yaml:"email"`
	FirstName string  `json:"first_name" yaml:"first_name"`
	LastName  string  `json:"last_name" yaml:"last_name"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest sets exactly one of Email or Phone.
type PasswordResetRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type VerifyResetCodeRequest struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ResetCode   string `json:"reset_code"`
	NewPassword string `json:"new_password"`
}

// MessageResponse is the body of endpoints that only acknowledge.
type MessageResponse struct {
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	ExpiresIn int    `json:"expires_in,omitempty" yaml:"expires_in,omitempty"`
	Redirect  string `json:"redirect,omitempty" yaml:"redirect,omitempty"`
}

// ErrorResponse is the backend's error body.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
