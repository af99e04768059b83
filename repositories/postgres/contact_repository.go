package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

// ContactRepository implements the repositories.ContactRepository interface
type ContactRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewContactRepository creates a new contact message repository
func NewContactRepository(db *DB, logger *zap.Logger) repositories.ContactRepository {
	return &ContactRepository{
		db:     db,
		logger: logger,
	}
}

const contactColumns = `id, name, email, subject, message, created_at`

// Create stores a contact form submission
func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	q := conn(ctx, r.db)
	_, err := q.ExecContext(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
		msg.CreatedAt,
	)
	if err != nil {
		return translateError("failed to create contact message", err)
	}

	r.logger.Debug("contact message stored", zap.String("id", msg.ID.String()))
	return nil
}

// GetByID retrieves a contact message by ID
func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = $1`

	q := conn(ctx, r.db)
	msg := &models.ContactMessage{}

	if err := q.QueryRowContext(ctx, query, id).Scan(contactFields(msg)...); err != nil {
		return nil, translateError("failed to get contact message", err)
	}

	return msg, nil
}

// List retrieves all contact messages, newest first
func (r *ContactRepository) List(ctx context.Context) ([]*models.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages ORDER BY created_at DESC, id`

	q := conn(ctx, r.db)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError("failed to list contact messages", err)
	}
	defer rows.Close()

	messages := []*models.ContactMessage{}
	for rows.Next() {
		msg := &models.ContactMessage{}
		if err := rows.Scan(contactFields(msg)...); err != nil {
			return nil, translateError("failed to scan contact message", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError("error iterating contact messages", err)
	}

	return messages, nil
}

func contactFields(m *models.ContactMessage) []interface{} {
	return []interface{}{
		&m.ID,
		&m.Name,
		&m.Email,
		&m.Subject,
		&m.Message,
		&m.CreatedAt,
	}
}
