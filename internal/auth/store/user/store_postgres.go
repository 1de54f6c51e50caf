package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"landtitle/internal/auth/models"
	"landtitle/internal/platform/postgres"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/sentinel"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, name, email, password_hash, role, wallet_address, gov_id, phone, created_at`

func (s *PostgresStore) Create(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		uuid.UUID(user.ID), user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.WalletAddress, user.GovID, user.Phone, user.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uuid.UUID(userID))
	return scanUser(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, models.NormalizeEmail(email))
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u      models.User
		userID uuid.UUID
		role   string
	)
	err := row.Scan(&userID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.WalletAddress, &u.GovID, &u.Phone, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(userID)
	u.Role = id.Role(role)
	return &u, nil
}
