// Package models defines the records persisted by the assistant backend and
// the input shapes accepted by its services.
package models

import "time"

// User is an account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRegistrationData is the input to registration.
type UserRegistrationData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginData is the input to login.
type UserLoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileData is a partial profile update; nil fields are unchanged.
type UpdateProfileData struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}
