package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/repositories"
	"github.com/upb/healthedu-backend/services"
	"github.com/upb/healthedu-backend/utils"
	"go.uber.org/zap"
)

// CreateVideoRequest represents a request to register a video
type CreateVideoRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=200"`
	Description     string `json:"description" validate:"required,min=10"`
	Category        string `json:"category" validate:"required,category"`
	Language        string `json:"language" validate:"required,language"`
	VideoURL        string `json:"video_url" validate:"required,http_url"`
	ThumbnailURL    string `json:"thumbnail_url" validate:"omitempty,http_url"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
}

// Normalize trims fields and sanitizes the description
func (r *CreateVideoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = sanitizeBody(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Language = strings.TrimSpace(r.Language)
	r.VideoURL = strings.TrimSpace(r.VideoURL)
	r.ThumbnailURL = strings.TrimSpace(r.ThumbnailURL)
}

// UpdateVideoRequest represents a partial video update
type UpdateVideoRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitnil,min=3,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitnil,min=10"`
	Category        *string `json:"category,omitempty" validate:"omitnil,category"`
	Language        *string `json:"language,omitempty" validate:"omitnil,language"`
	VideoURL        *string `json:"video_url,omitempty" validate:"omitnil,http_url"`
	ThumbnailURL    *string `json:"thumbnail_url,omitempty" validate:"omitnil,media_url"`
	DurationSeconds *int    `json:"duration_seconds,omitempty" validate:"omitnil,gte=0"`
}

// Normalize trims fields and sanitizes the description
func (r *UpdateVideoRequest) Normalize() {
	trimPtr(r.Title)
	sanitizeBodyPtr(r.Description)
	trimPtr(r.Category)
	trimPtr(r.Language)
	trimPtr(r.VideoURL)
	trimPtr(r.ThumbnailURL)
}

func (r *UpdateVideoRequest) apply(v *models.Video) {
	if r.Title != nil {
		v.Title = *r.Title
	}
	if r.Description != nil {
		v.Description = *r.Description
	}
	if r.Category != nil {
		v.Category = models.Category(*r.Category)
	}
	if r.Language != nil {
		v.Language = models.Language(*r.Language)
	}
	if r.VideoURL != nil {
		v.VideoURL = *r.VideoURL
	}
	if r.ThumbnailURL != nil {
		v.ThumbnailURL = *r.ThumbnailURL
	}
	if r.DurationSeconds != nil {
		v.DurationSeconds = *r.DurationSeconds
	}
}

// VideoHandler handles video-related HTTP requests
type VideoHandler struct {
	videos repositories.VideoRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(videos repositories.VideoRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		videos: videos,
		txMgr:  txMgr,
		logger: logger,
	}
}

// HandleList handles GET /videos
func (h *VideoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	filter, err := parseContentFilter(r)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	videos, err := h.videos.List(r.Context(), filter)
	if err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, nil), logger)
		return
	}
	if videos == nil {
		videos = []*models.Video{}
	}

	_ = utils.WriteList(w, len(videos), videos)
}

// HandleGet handles GET /videos/{id}
func (h *VideoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrVideoNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	video, err := h.videos.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, services.ErrVideoNotFound), logger)
		return
	}

	_ = utils.WriteOK(w, video)
}

// HandleCreate handles POST /videos
func (h *VideoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	var req CreateVideoRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	video := models.NewVideo(req.Title, req.Description, req.VideoURL, models.Category(req.Category), models.Language(req.Language))
	video.ThumbnailURL = req.ThumbnailURL
	video.DurationSeconds = req.DurationSeconds

	if err := h.videos.Create(r.Context(), video); err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, nil), logger)
		return
	}

	logger.Info("video created", zap.String("video_id", video.ID.String()))

	_ = utils.WriteCreated(w, "", video)
}

// HandleUpdate handles PATCH /videos/{id}
func (h *VideoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrVideoNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	var req UpdateVideoRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	video, err := services.WithTransactionResult(r.Context(), h.txMgr, func(ctx context.Context) (*models.Video, error) {
		video, err := h.videos.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, services.FromRepositoryError(err, services.ErrVideoNotFound)
		}

		req.apply(video)

		if err := h.videos.Update(ctx, video); err != nil {
			return nil, services.FromRepositoryError(err, services.ErrVideoNotFound)
		}
		return video, nil
	})
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	logger.Info("video updated", zap.String("video_id", video.ID.String()))

	_ = utils.WriteOK(w, video)
}

// HandleDelete handles DELETE /videos/{id}
func (h *VideoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrVideoNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	if err := h.videos.Delete(r.Context(), id); err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, services.ErrVideoNotFound), logger)
		return
	}

	logger.Info("video deleted", zap.String("video_id", id.String()))

	utils.WriteNoContent(w)
}
