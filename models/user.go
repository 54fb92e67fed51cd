package models

import "time"

// Profile is the signed-in user. Email and Phone are null when the account was registered without them.
type Profile struct {
	ID           string    `json:"id" yaml:"id"`
	Email        *string   `json:"email" yaml:"email"`
	Phone        *string   `json:"phone" yaml:"phone"`
	FirstName    string    `json:"first_name" yaml:"first_name"`
	LastName     string    `json:"last_name" yaml:"last_name"`
	IsRegistered bool      `json:"is_registered" yaml:"is_registered"`
	CreatedAt    time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
