package domain

//go:generate mockgen -destination=../../mocks/mock_admin_repository.go -package=mocks github.com/7-central/admin-auth-service/internal/auth/domain AdminRepository
//go:generate mockgen -destination=../../mocks/mock_audit_store.go -package=mocks github.com/7-central/admin-auth-service/internal/auth/domain AuditStore

import (
	"context"
	"time"
)

type AdminRepository interface {
	// GetByEmail returns (nil, nil) when no admin matches.
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error
}

type AuditStore interface {
	Append(ctx context.Context, entry *AuditEntry) error
}
