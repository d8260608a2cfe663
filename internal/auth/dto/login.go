package dto

import (
	"regexp"
	"strings"

	autherror "github.com/7-central/admin-auth-service/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const maxPasswordLength = 128

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Request metadata, filled by the handler.
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// Normalize lower-cases and trims the email so it matches the identifier
// the rate limiter tracks.
func (in *LoginInput) Normalize() {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
}

// Validate rejects malformed input before any rate-limit or audit
// interaction happens.
func (in *LoginInput) Validate() error {
	if in.Email == "" || in.Password == "" {
		return autherror.InvalidInput("email and password are required")
	}
	if !emailRegex.MatchString(in.Email) {
		return autherror.InvalidInput("invalid email address format")
	}
	if len(in.Password) > maxPasswordLength {
		return autherror.InvalidInput("password too long")
	}
	return nil
}
