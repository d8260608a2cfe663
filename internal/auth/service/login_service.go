package service

//go:generate mockgen -destination=../../mocks/mock_login_limiter.go -package=mocks github.com/7-central/admin-auth-service/internal/auth/service LoginLimiter
//go:generate mockgen -destination=../../mocks/mock_audit_recorder.go -package=mocks github.com/7-central/admin-auth-service/internal/auth/service AuditRecorder

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/7-central/admin-auth-service/internal/auth/audit"
	"github.com/7-central/admin-auth-service/internal/auth/domain"
	"github.com/7-central/admin-auth-service/internal/auth/dto"
	"github.com/7-central/admin-auth-service/internal/auth/limiter"
	autherror "github.com/7-central/admin-auth-service/internal/errors"
)

// LoginLimiter is the admission gate consulted before any credential work.
type LoginLimiter interface {
	Check(identifier string) limiter.Decision
	RecordFailure(identifier string) limiter.Decision
	RecordSuccess(identifier string)
}

// AuditRecorder receives security events fire-and-forget.
type AuditRecorder interface {
	Record(event audit.Event)
}

// dummyHash keeps the unknown-email path as expensive as a real bcrypt
// comparison, so response timing does not reveal whether the account exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type LoginService struct {
	repo         domain.AdminRepository
	sessions     SessionManager
	limiter      LoginLimiter
	audit        AuditRecorder
	queryTimeout time.Duration
}

func NewLoginService(repo domain.AdminRepository, sessions SessionManager, lim LoginLimiter,
	rec AuditRecorder, queryTimeout time.Duration) *LoginService {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &LoginService{
		repo:         repo,
		sessions:     sessions,
		limiter:      lim,
		audit:        rec,
		queryTimeout: queryTimeout,
	}
}

// Login runs the full flow: input validation, rate-limit admission,
// credential verification, session issuance, audit. The limiter is
// consulted before any credential work so a locked identifier costs no
// hashing and leaks no timing.
func (s *LoginService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResult, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if d := s.limiter.Check(input.Email); !d.Allowed {
		s.audit.Record(audit.Event{
			Action:    domain.ActionLoginFailed,
			Email:     input.Email,
			IPAddress: input.IPAddress,
			UserAgent: input.UserAgent,
			Details:   map[string]string{"reason": "rate_limited"},
		})
		return nil, autherror.RateLimited(d.RetryAfter)
	}

	admin, err := s.authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, autherror.Infrastructure(err)
	}
	if admin == nil {
		d := s.limiter.RecordFailure(input.Email)
		s.audit.Record(audit.Event{
			Action:    domain.ActionLoginFailed,
			Email:     input.Email,
			IPAddress: input.IPAddress,
			UserAgent: input.UserAgent,
		})
		return nil, autherror.InvalidCredentials(d.RemainingAttempts)
	}

	s.limiter.RecordSuccess(input.Email)

	token, session, err := s.sessions.Issue(admin)
	if err != nil {
		return nil, autherror.Infrastructure(err)
	}

	s.audit.Record(audit.Event{
		Action:    domain.ActionLoginSuccess,
		AdminID:   admin.ID,
		Email:     admin.Email,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		Success:   true,
	})

	return &dto.LoginResult{
		SessionToken: token,
		ExpiresAt:    session.ExpiresAt,
		Admin: dto.AdminOutput{
			ID:        admin.ID,
			Email:     admin.Email,
			Name:      admin.Name,
			Role:      admin.Role,
			LastLogin: admin.LastLogin,
		},
	}, nil
}

// Logout validates the presented session for audit attribution only; it
// succeeds even when the session is already invalid or missing.
func (s *LoginService) Logout(ctx context.Context, input dto.LogoutInput) {
	var adminID, email string
	if input.Token != "" {
		if session, err := s.sessions.Verify(input.Token); err == nil {
			adminID = session.AdminID
			email = session.Email
		}
	}

	s.audit.Record(audit.Event{
		Action:    domain.ActionLogout,
		AdminID:   adminID,
		Email:     email,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		Success:   true,
	})
}

// authenticate unifies unknown email, inactive account and password
// mismatch into one nil result so the three are indistinguishable to the
// caller. A non-nil error means the credential store itself failed.
func (s *LoginService) authenticate(ctx context.Context, email, password string) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, nil
	}

	mismatch := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil
	if mismatch || !admin.IsActive {
		return nil, nil
	}

	// Best effort: a failed last-login touch must not fail the login.
	if err := s.repo.UpdateLastLogin(ctx, admin.ID, time.Now()); err != nil {
		log.Printf("warn: failed to update last login for admin %s: %v", admin.ID, err)
	}

	return admin, nil
}
