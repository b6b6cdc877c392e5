package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is the authentication identity; the public-facing record is models.Profile.
type User struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Token             string    `json:"token,omitempty"`
	FullName          *string   `json:"full_name,omitempty"`
	AvatarURL         *string   `json:"avatar_url,omitempty"`
	Password          []byte    `json:"-"`
	PlaintextPassword string    `json:"-"`
}

type UserClaim struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`

	jwt.RegisteredClaims
}
