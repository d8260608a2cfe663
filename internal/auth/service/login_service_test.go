package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/7-central/admin-auth-service/internal/auth/audit"
	"github.com/7-central/admin-auth-service/internal/auth/domain"
	"github.com/7-central/admin-auth-service/internal/auth/dto"
	"github.com/7-central/admin-auth-service/internal/auth/limiter"
	"github.com/7-central/admin-auth-service/internal/auth/service"
	autherror "github.com/7-central/admin-auth-service/internal/errors"
	"github.com/7-central/admin-auth-service/internal/mocks"
)

// auditAction matches an audit.Event by its action.
type auditAction struct {
	action domain.AuditAction
}

func (m auditAction) Matches(x interface{}) bool {
	e, ok := x.(audit.Event)
	return ok && e.Action == m.action
}

func (m auditAction) String() string {
	return fmt.Sprintf("audit event with action %s", m.action)
}

type loginServiceMocks struct {
	repo     *mocks.MockAdminRepository
	sessions *mocks.MockSessionManager
	limiter  *mocks.MockLoginLimiter
	audit    *mocks.MockAuditRecorder
}

func newLoginService(t *testing.T) (*service.LoginService, loginServiceMocks, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	m := loginServiceMocks{
		repo:     mocks.NewMockAdminRepository(ctrl),
		sessions: mocks.NewMockSessionManager(ctrl),
		limiter:  mocks.NewMockLoginLimiter(ctrl),
		audit:    mocks.NewMockAuditRecorder(ctrl),
	}
	s := service.NewLoginService(m.repo, m.sessions, m.limiter, m.audit, 5*time.Second)
	return s, m, ctrl
}

func activeAdmin(t *testing.T, password string) *domain.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	lastLogin := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Admin{
		ID:           "admin-123",
		Email:        "admin@example.com",
		Name:         "Jane Admin",
		Role:         "superadmin",
		PasswordHash: string(hash),
		IsActive:     true,
		LastLogin:    &lastLogin,
	}
}

func TestLoginService_Login_Success(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	password := "correct horse battery"
	admin := activeAdmin(t, password)
	session := &domain.Session{
		AdminID:   admin.ID,
		Email:     admin.Email,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	m.limiter.EXPECT().Check(admin.Email).Return(limiter.Decision{Allowed: true, RemainingAttempts: 3})
	m.repo.EXPECT().GetByEmail(gomock.Any(), admin.Email).Return(admin, nil)
	m.repo.EXPECT().UpdateLastLogin(gomock.Any(), admin.ID, gomock.Any()).Return(nil)
	m.limiter.EXPECT().RecordSuccess(admin.Email)
	m.sessions.EXPECT().Issue(admin).Return("signed-token", session, nil)
	m.audit.EXPECT().Record(auditAction{domain.ActionLoginSuccess})

	result, err := s.Login(context.Background(), dto.LoginInput{
		Email:    "Admin@Example.com", // normalized before any lookup
		Password: password,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "signed-token", result.SessionToken)
	assert.Equal(t, session.ExpiresAt, result.ExpiresAt)
	assert.Equal(t, admin.ID, result.Admin.ID)
	assert.Equal(t, admin.Role, result.Admin.Role)
	assert.Equal(t, admin.LastLogin, result.Admin.LastLogin)
}

func TestLoginService_Login_RateLimitedSkipsCredentialCheck(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	lockedUntil := time.Now().Add(30 * time.Second)
	m.limiter.EXPECT().Check("a@x.com").Return(limiter.Decision{
		Allowed:     false,
		LockedUntil: &lockedUntil,
		RetryAfter:  30 * time.Second,
	})
	// No GetByEmail expectation: a locked identifier must cost no hashing.
	m.audit.EXPECT().Record(auditAction{domain.ActionLoginFailed})

	result, err := s.Login(context.Background(), dto.LoginInput{Email: "a@x.com", Password: "whatever"})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, autherror.KindRateLimited, autherror.KindOf(err))
	var authErr *autherror.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 30*time.Second, authErr.RetryAfter)
}

func TestLoginService_Login_WrongPassword(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	admin := activeAdmin(t, "right-password")

	m.limiter.EXPECT().Check(admin.Email).Return(limiter.Decision{Allowed: true, RemainingAttempts: 3})
	m.repo.EXPECT().GetByEmail(gomock.Any(), admin.Email).Return(admin, nil)
	m.limiter.EXPECT().RecordFailure(admin.Email).Return(limiter.Decision{Allowed: true, RemainingAttempts: 2})
	m.audit.EXPECT().Record(auditAction{domain.ActionLoginFailed})

	result, err := s.Login(context.Background(), dto.LoginInput{Email: admin.Email, Password: "wrong-password"})

	assert.Nil(t, result)
	var authErr *autherror.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, autherror.KindInvalidCredentials, authErr.Kind)
	assert.True(t, authErr.HasRemaining)
	assert.Equal(t, 2, authErr.RemainingAttempts)
}

func TestLoginService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	m.limiter.EXPECT().Check("ghost@x.com").Return(limiter.Decision{Allowed: true, RemainingAttempts: 3})
	m.repo.EXPECT().GetByEmail(gomock.Any(), "ghost@x.com").Return(nil, nil)
	m.limiter.EXPECT().RecordFailure("ghost@x.com").Return(limiter.Decision{Allowed: true, RemainingAttempts: 2})
	m.audit.EXPECT().Record(auditAction{domain.ActionLoginFailed})

	result, err := s.Login(context.Background(), dto.LoginInput{Email: "ghost@x.com", Password: "anything"})

	assert.Nil(t, result)
	var authErr *autherror.Error
	require.ErrorAs(t, err, &authErr)
	// Same kind, code and message as a wrong password on a real account.
	assert.Equal(t, autherror.KindInvalidCredentials, authErr.Kind)
	assert.Equal(t, "invalid email or password", authErr.Message)
}

func TestLoginService_Login_InactiveAccount(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	password := "right-password"
	admin := activeAdmin(t, password)
	admin.IsActive = false

	m.limiter.EXPECT().Check(admin.Email).Return(limiter.Decision{Allowed: true, RemainingAttempts: 3})
	m.repo.EXPECT().GetByEmail(gomock.Any(), admin.Email).Return(admin, nil)
	m.limiter.EXPECT().RecordFailure(admin.Email).Return(limiter.Decision{Allowed: true, RemainingAttempts: 2})
	m.audit.EXPECT().Record(auditAction{domain.ActionLoginFailed})

	result, err := s.Login(context.Background(), dto.LoginInput{Email: admin.Email, Password: password})

	assert.Nil(t, result)
	assert.Equal(t, autherror.KindInvalidCredentials, autherror.KindOf(err))
}

func TestLoginService_Login_RepositoryError(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	m.limiter.EXPECT().Check("a@x.com").Return(limiter.Decision{Allowed: true, RemainingAttempts: 3})
	m.repo.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(nil, errors.New("connection refused"))

	result, err := s.Login(context.Background(), dto.LoginInput{Email: "a@x.com", Password: "x"})

	assert.Nil(t, result)
	assert.Equal(t, autherror.KindInfrastructure, autherror.KindOf(err))
}

func TestLoginService_Login_LastLoginUpdateFailureTolerated(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	password := "correct"
	admin := activeAdmin(t, password)

	m.limiter.EXPECT().Check(admin.Email).Return(limiter.Decision{Allowed: true, RemainingAttempts: 3})
	m.repo.EXPECT().GetByEmail(gomock.Any(), admin.Email).Return(admin, nil)
	m.repo.EXPECT().UpdateLastLogin(gomock.Any(), admin.ID, gomock.Any()).Return(errors.New("write timeout"))
	m.limiter.EXPECT().RecordSuccess(admin.Email)
	m.sessions.EXPECT().Issue(admin).Return("signed-token", &domain.Session{AdminID: admin.ID}, nil)
	m.audit.EXPECT().Record(auditAction{domain.ActionLoginSuccess})

	result, err := s.Login(context.Background(), dto.LoginInput{Email: admin.Email, Password: password})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.SessionToken)
}

func TestLoginService_Login_SessionIssueFailure(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	password := "correct"
	admin := activeAdmin(t, password)

	m.limiter.EXPECT().Check(admin.Email).Return(limiter.Decision{Allowed: true, RemainingAttempts: 3})
	m.repo.EXPECT().GetByEmail(gomock.Any(), admin.Email).Return(admin, nil)
	m.repo.EXPECT().UpdateLastLogin(gomock.Any(), admin.ID, gomock.Any()).Return(nil)
	m.limiter.EXPECT().RecordSuccess(admin.Email)
	m.sessions.EXPECT().Issue(admin).Return("", nil, errors.New("signing failed"))

	result, err := s.Login(context.Background(), dto.LoginInput{Email: admin.Email, Password: password})

	assert.Nil(t, result)
	assert.Equal(t, autherror.KindInfrastructure, autherror.KindOf(err))
}

func TestLoginService_Login_InvalidInputSkipsEverything(t *testing.T) {
	s, _, ctrl := newLoginService(t)
	defer ctrl.Finish()

	tests := []struct {
		name  string
		input dto.LoginInput
	}{
		{"empty email", dto.LoginInput{Password: "x"}},
		{"empty password", dto.LoginInput{Email: "a@x.com"}},
		{"malformed email", dto.LoginInput{Email: "not-an-email", Password: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.Login(context.Background(), tt.input)

			assert.Nil(t, result)
			// No limiter, repo or audit expectations were registered, so
			// any interaction would fail the controller.
			assert.Equal(t, autherror.KindInvalidInput, autherror.KindOf(err))
		})
	}
}

func TestLoginService_Logout_WithValidSession(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	m.sessions.EXPECT().Verify("valid-token").Return(&domain.Session{
		AdminID: "admin-123",
		Email:   "admin@example.com",
	}, nil)
	m.audit.EXPECT().Record(gomock.Any()).Do(func(e audit.Event) {
		assert.Equal(t, domain.ActionLogout, e.Action)
		assert.Equal(t, "admin-123", e.AdminID)
		assert.Equal(t, "admin@example.com", e.Email)
	})

	s.Logout(context.Background(), dto.LogoutInput{Token: "valid-token"})
}

func TestLoginService_Logout_InvalidSessionStillSucceeds(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	m.sessions.EXPECT().Verify("bad-token").Return(nil, autherror.SessionInvalid(errors.New("expired"))).Times(2)
	m.audit.EXPECT().Record(auditAction{domain.ActionLogout}).Times(2)

	// Idempotent: a second logout is just another no-op revoke.
	s.Logout(context.Background(), dto.LogoutInput{Token: "bad-token"})
	s.Logout(context.Background(), dto.LogoutInput{Token: "bad-token"})
}

func TestLoginService_Logout_WithoutToken(t *testing.T) {
	s, m, ctrl := newLoginService(t)
	defer ctrl.Finish()

	m.audit.EXPECT().Record(gomock.Any()).Do(func(e audit.Event) {
		assert.Equal(t, domain.ActionLogout, e.Action)
		assert.Empty(t, e.AdminID)
	})

	s.Logout(context.Background(), dto.LogoutInput{})
}
