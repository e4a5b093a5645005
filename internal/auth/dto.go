package auth

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput carries admin console credentials plus the caller's address for
// rate limiting.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	RemoteIP string `json:"-"`
}

// TokenPairDTO is the issued credential pair.
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProfileDTO is the authenticated admin's identity.
type ProfileDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
