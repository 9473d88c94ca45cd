package models

import "github.com/golang-jwt/jwt/v5"

// PassClaims identifies a registered attendee on certificate and feedback requests.
type PassClaims struct {
	RegistrationID string `json:"rid"`
	Email          string `json:"email"`
	FullName       string `json:"name"`
	jwt.RegisteredClaims
}

// IssuedPass is returned to the client after a successful registration.
type IssuedPass struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
