package domain

import "time"

// Admin is the read-only credential record loaded from the store. The core
// never creates or mutates it beyond the last-login touch on success.
type Admin struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the decoded content of a signed session token. The server
// keeps no per-session state; the token itself is the session.
type Session struct {
	AdminID   string
	Email     string
	Role      string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type AuditAction string

const (
	ActionLoginSuccess AuditAction = "LOGIN_SUCCESS"
	ActionLoginFailed  AuditAction = "LOGIN_FAILED"
	ActionLogout       AuditAction = "LOGOUT"
)

// AuditEntry is one immutable row in the security audit trail. AdminID is
// nil for failed logins where the identity is unknown.
type AuditEntry struct {
	ID        string
	AdminID   *string
	Action    AuditAction
	IPAddress string
	UserAgent string
	Details   map[string]string
	CreatedAt time.Time
}
