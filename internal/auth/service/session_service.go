package service

//go:generate mockgen -destination=../../mocks/mock_session_manager.go -package=mocks github.com/7-central/admin-auth-service/internal/auth/service SessionManager

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/7-central/admin-auth-service/internal/auth/domain"
	autherror "github.com/7-central/admin-auth-service/internal/errors"
)

// SessionManager issues and verifies stateless signed session tokens.
type SessionManager interface {
	Issue(admin *domain.Admin) (string, *domain.Session, error)
	Verify(token string) (*domain.Session, error)
}

// SessionService signs sessions with HS256. Expiry is fixed at issuance
// (non-sliding); a refresh would mean issuing a new token.
type SessionService struct {
	Secret string
	Expiry time.Duration
}

type SessionClaims struct {
	jwt.RegisteredClaims
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

func NewSessionService(secret string, expiryHours int) *SessionService {
	return &SessionService{
		Secret: secret,
		Expiry: time.Duration(expiryHours) * time.Hour,
	}
}

func (ss *SessionService) Issue(admin *domain.Admin) (string, *domain.Session, error) {
	now := time.Now()
	expiresAt := now.Add(ss.Expiry)

	claims := SessionClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		Name:    admin.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ss.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	session := &domain.Session{
		AdminID:   admin.ID,
		Email:     admin.Email,
		Role:      admin.Role,
		Name:      admin.Name,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}

	return token, session, nil
}

// Verify parses and validates a session token. It is a pure function of
// the token and the secret; malformed, tampered and expired tokens all
// come back as a session-invalid error.
func (ss *SessionService) Verify(tokenString string) (*domain.Session, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ss.Secret), nil
	})
	if err != nil {
		return nil, autherror.SessionInvalid(err)
	}
	if !token.Valid {
		return nil, autherror.SessionInvalid(fmt.Errorf("invalid token"))
	}

	session := &domain.Session{
		AdminID: claims.AdminID,
		Email:   claims.Email,
		Role:    claims.Role,
		Name:    claims.Name,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}
