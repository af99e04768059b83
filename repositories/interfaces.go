package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
)

var (
	// ErrNotFound is returned when no record matches the requested identifier
	ErrNotFound = errors.New("record not found")

	// ErrInvalidData is returned when the store rejects a record against its schema
	ErrInvalidData = errors.New("record violates schema constraints")

	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("record already exists")
)

// TransactionManager runs a unit of work in one database transaction
type TransactionManager interface {
	// InTransaction commits when fn returns nil and rolls back otherwise.
	// Repositories called with the ctx passed to fn join the transaction,
	// and a call made with a ctx that already carries one reuses it.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction is an open database transaction
type Transaction interface {
	Commit() error
	Rollback() error
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by (normalized) email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update updates a user's name, role and password hash
	Update(ctx context.Context, user *models.User) error
}

// ArticleRepository handles article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error)

	// GetByIDForUpdate retrieves an article and locks its row when called inside a transaction
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Article, error)

	// List retrieves articles matching the filter, newest first
	List(ctx context.Context, filter models.ContentFilter) ([]*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VideoRepository handles video data operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Video, error)
	List(ctx context.Context, filter models.ContentFilter) ([]*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TipRepository handles tip data operations
type TipRepository interface {
	Create(ctx context.Context, tip *models.Tip) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tip, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tip, error)
	List(ctx context.Context, filter models.ContentFilter) ([]*models.Tip, error)
	Update(ctx context.Context, tip *models.Tip) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository handles contact form submissions. There is no update or delete path.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)

	// List retrieves submissions newest first
	List(ctx context.Context) ([]*models.ContactMessage, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Users    UserRepository
	Articles ArticleRepository
	Videos   VideoRepository
	Tips     TipRepository
	Contacts ContactRepository
}
