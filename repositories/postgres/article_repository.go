package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

// ArticleRepository implements the repositories.ArticleRepository interface
type ArticleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB, logger *zap.Logger) repositories.ArticleRepository {
	return &ArticleRepository{
		db:     db,
		logger: logger,
	}
}

const articleColumns = `id, title, content, summary, author, category, language, image_url, video_url, created_at, updated_at`

// Create creates a new article
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	q := conn(ctx, r.db)
	_, err := q.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.Summary,
		article.Author,
		article.Category,
		article.Language,
		article.ImageURL,
		article.VideoURL,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return translateError("failed to create article", err)
	}

	r.logger.Debug("article created", zap.String("id", article.ID.String()))
	return nil
}

// GetByID retrieves an article by ID
func (r *ArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves an article and locks the row until the surrounding transaction ends
func (r *ArticleRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	return r.get(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1 FOR UPDATE`, id)
}

func (r *ArticleRepository) get(ctx context.Context, query string, id uuid.UUID) (*models.Article, error) {
	q := conn(ctx, r.db)
	article := &models.Article{}

	err := q.QueryRowContext(ctx, query, id).Scan(articleFields(article)...)
	if err != nil {
		return nil, translateError("failed to get article", err)
	}

	return article, nil
}

// List retrieves articles matching the filter, newest first
func (r *ArticleRepository) List(ctx context.Context, filter models.ContentFilter) ([]*models.Article, error) {
	query, args := buildContentListQuery(`SELECT `+articleColumns+` FROM articles`, filter)

	q := conn(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list articles", err)
	}
	defer rows.Close()

	articles := []*models.Article{}
	for rows.Next() {
		article := &models.Article{}
		if err := rows.Scan(articleFields(article)...); err != nil {
			return nil, translateError("failed to scan article", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError("error iterating articles", err)
	}

	return articles, nil
}

// Update replaces the mutable fields of an article
func (r *ArticleRepository) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $2,
		    content = $3,
		    summary = $4,
		    author = $5,
		    category = $6,
		    language = $7,
		    image_url = $8,
		    video_url = $9,
		    updated_at = $10
		WHERE id = $1
	`

	article.UpdatedAt = models.Now()

	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx, query,
		article.ID,
		article.Title,
		article.Content,
		article.Summary,
		article.Author,
		article.Category,
		article.Language,
		article.ImageURL,
		article.VideoURL,
		article.UpdatedAt,
	)
	if err != nil {
		return translateError("failed to update article", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}

	r.logger.Debug("article updated", zap.String("id", article.ID.String()))
	return nil
}

// Delete deletes an article
func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete article", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}

	r.logger.Debug("article deleted", zap.String("id", id.String()))
	return nil
}

func articleFields(a *models.Article) []interface{} {
	return []interface{}{
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Summary,
		&a.Author,
		&a.Category,
		&a.Language,
		&a.ImageURL,
		&a.VideoURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}
