package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/7-central/admin-auth-service/internal/auth/domain"
)

// DBTX is the subset of pgxpool.Pool the repository needs; pgxmock
// implements it in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByEmail returns (nil, nil) when no admin matches, so callers cannot
// tell a missing account from a bad password.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `
		SELECT id, email, name, role, password_hash, is_active, last_login, created_at, updated_at
		FROM admins
		WHERE email = $1
		LIMIT 1;
	`
	row := r.db.QueryRow(ctx, query, email)

	var admin domain.Admin
	err := row.Scan(&admin.ID, &admin.Email, &admin.Name, &admin.Role, &admin.PasswordHash,
		&admin.IsActive, &admin.LastLogin, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return &admin, nil
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE admins
		SET last_login = $2, updated_at = now()
		WHERE id = $1
	`, adminID, at)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// Append writes one immutable audit row. Entries are never updated or
// deleted here; retention is handled outside the service.
func (r *PostgresRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_logs (id, admin_id, action, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.AdminID, string(entry.Action), entry.IPAddress, entry.UserAgent, details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
