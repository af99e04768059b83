package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"go.uber.org/zap"
)

// VideoRepository implements the repositories.VideoRepository interface
type VideoRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *DB, logger *zap.Logger) repositories.VideoRepository {
	return &VideoRepository{
		db:     db,
		logger: logger,
	}
}

const videoColumns = `id, title, description, category, language, video_url, thumbnail_url, duration_seconds, created_at, updated_at`

// Create creates a new video
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (` + videoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	q := conn(ctx, r.db)
	_, err := q.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.Category,
		video.Language,
		video.VideoURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return translateError("failed to create video", err)
	}

	r.logger.Debug("video created", zap.String("id", video.ID.String()))
	return nil
}

// GetByID retrieves a video by ID
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return r.get(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a video and locks the row until the surrounding transaction ends
func (r *VideoRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	return r.get(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1 FOR UPDATE`, id)
}

func (r *VideoRepository) get(ctx context.Context, query string, id uuid.UUID) (*models.Video, error) {
	q := conn(ctx, r.db)
	video := &models.Video{}

	if err := q.QueryRowContext(ctx, query, id).Scan(videoFields(video)...); err != nil {
		return nil, translateError("failed to get video", err)
	}

	return video, nil
}

// List retrieves videos matching the filter, newest first
func (r *VideoRepository) List(ctx context.Context, filter models.ContentFilter) ([]*models.Video, error) {
	query, args := buildContentListQuery(`SELECT `+videoColumns+` FROM videos`, filter)

	q := conn(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list videos", err)
	}
	defer rows.Close()

	videos := []*models.Video{}
	for rows.Next() {
		video := &models.Video{}
		if err := rows.Scan(videoFields(video)...); err != nil {
			return nil, translateError("failed to scan video", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, translateError("error iterating videos", err)
	}

	return videos, nil
}

// Update replaces the mutable fields of a video
func (r *VideoRepository) Update(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos
		SET title = $2,
		    description = $3,
		    category = $4,
		    language = $5,
		    video_url = $6,
		    thumbnail_url = $7,
		    duration_seconds = $8,
		    updated_at = $9
		WHERE id = $1
	`

	video.UpdatedAt = models.Now()

	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.Category,
		video.Language,
		video.VideoURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.UpdatedAt,
	)
	if err != nil {
		return translateError("failed to update video", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}

	r.logger.Debug("video updated", zap.String("id", video.ID.String()))
	return nil
}

// Delete deletes a video
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	q := conn(ctx, r.db)
	result, err := q.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete video", err)
	}

	if err := expectOneRow(result); err != nil {
		return err
	}

	r.logger.Debug("video deleted", zap.String("id", id.String()))
	return nil
}

func videoFields(v *models.Video) []interface{} {
	return []interface{}{
		&v.ID,
		&v.Title,
		&v.Description,
		&v.Category,
		&v.Language,
		&v.VideoURL,
		&v.ThumbnailURL,
		&v.DurationSeconds,
		&v.CreatedAt,
		&v.UpdatedAt,
	}
}
