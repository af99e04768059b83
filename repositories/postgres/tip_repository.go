package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

// TipRepository implements the repositories.TipRepository interface
type TipRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTipRepository creates a new tip repository
func NewTipRepository(db *DB, logger *zap.Logger) repositories.TipRepository {
	return &TipRepository{
		db:     db,
		logger: logger,
	}
}

const tipColumns = `id, title, content, category, language, image_url, created_at, updated_at`

// Create creates a new tip
func (r *TipRepository) Create(ctx context.Context, tip *models.Tip) error {
	query := `
		INSERT INTO tips (` + tipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	q := conn(ctx, r.db)
	_, err := q.ExecContext(ctx, query,
		tip.ID,
		tip.Title,
		tip.Content,
		tip.Category,
		tip.Language,
		tip.ImageURL,
		tip.CreatedAt,
		tip.UpdatedAt,
	)
	if err != nil {
		return translateError("failed to create tip", err)
	}

	r.logger.Debug("tip created", zap.String("id", tip.ID.String()))
	return nil
}

// GetByID retrieves a tip by ID
func (r *TipRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tip, error) {
	return r.get(ctx, `SELECT `+tipColumns+` FROM tips WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a tip and locks the row until the surrounding transaction ends
func (r *TipRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Tip, error) {
	return r.get(ctx, `SELECT `+tipColumns+` FROM tips WHERE id = $1 FOR UPDATE`, id)
}

func (r *TipRepository) get(ctx context.Context, query string, id uuid.UUID) (*models.Tip, error) {
	q := conn(ctx, r.db)
	tip := &models.Tip{}

	if err := q.QueryRowContext(ctx, query, id).Scan(tipFields(tip)...); err != nil {
		return nil, translateError("failed to get tip", err)
	}

	return tip, nil
}

// List retrieves tips matching the filter, newest first
func (r *TipRepository) List(ctx context.Context, filter models.ContentFilter) ([]*models.Tip, error) {
	query, args := buildContentListQuery(`SELECT `+tipColumns+` FROM tips`, filter)

	q := conn(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list tips", err)
	}
	defer rows.Close()

	tips := []*models.Tip{}
	for rows.Next() {
		tip := &models.Tip{}
		if err := rows.Scan(tipFields(tip)...); err != nil {
			return nil, translateError("failed to scan tip", err)
		}
		tips = append(tips, tip)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError("error iterating tips", err)
	}

	return tips, nil
}

// Update replaces the mutable fields of a tip
func (r *TipRepository) Update(ctx context.Context, tip *models.Tip) error {
	query := `
		UPDATE tips
		SET title = $2,
		    content = $3,
		    category = $4,
		    language = $5,
		    image_url = $6,
		    updated_at = $7
		WHERE id = $1
	`

	tip.UpdatedAt = models.Now()

	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx, query,
		tip.ID,
		tip.Title,
		tip.Content,
		tip.Category,
		tip.Language,
		tip.ImageURL,
		tip.UpdatedAt,
	)
	if err != nil {
		return translateError("failed to update tip", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}

	r.logger.Debug("tip updated", zap.String("id", tip.ID.String()))
	return nil
}

// Delete deletes a tip
func (r *TipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx, `DELETE FROM tips WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete tip", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}

	r.logger.Debug("tip deleted", zap.String("id", id.String()))
	return nil
}

func tipFields(t *models.Tip) []interface{} {
	return []interface{}{
		&t.ID,
		&t.Title,
		&t.Content,
		&t.Category,
		&t.Language,
		&t.ImageURL,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}
