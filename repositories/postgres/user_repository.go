package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

// UserRepository implements the repositories.UserRepository interface
type UserRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB, logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	q := conn(ctx, r.db)
	_, err := q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		models.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return translateError("failed to create user", err)
	}

	r.logger.Debug("user created", zap.String("id", user.ID.String()), zap.String("email", user.Email))
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	q := conn(ctx, r.db)
	user, err := scanUser(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError("failed to get user", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email; the lookup is case-insensitive
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	q := conn(ctx, r.db)
	user, err := scanUser(q.QueryRowContext(ctx, query, models.NormalizeEmail(email)))
	if err != nil {
		return nil, translateError("failed to get user by email", err)
	}
	return user, nil
}

// Update updates a user's name, role and password hash
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $2, role = $3, password_hash = $4, updated_at = $5
		WHERE id = $1
	`

	user.UpdatedAt = models.Now()

	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Role,
		user.PasswordHash,
		user.UpdatedAt,
	)
	if err != nil {
		return translateError("failed to update user", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}

	r.logger.Debug("user updated", zap.String("id", user.ID.String()))
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// expectOneRow reports ErrNotFound when a write touched no rows
func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
