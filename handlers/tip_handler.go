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

// CreateTipRequest represents a request to create a tip
type CreateTipRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Content  string `json:"content" validate:"required,min=10"`
	Category string `json:"category" validate:"required,category"`
	Language string `json:"language" validate:"required,language"`
	ImageURL string `json:"image_url" validate:"omitempty,http_url"`
}

func (r *CreateTipRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = sanitizeBody(r.Content)
	r.Category = strings.TrimSpace(r.Category)
	r.Language = strings.TrimSpace(r.Language)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

// UpdateTipRequest represents a partial tip update
type UpdateTipRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitnil,min=3,max=200"`
	Content  *string `json:"content,omitempty" validate:"omitnil,min=10"`
	Category *string `json:"category,omitempty" validate:"omitnil,category"`
	Language *string `json:"language,omitempty" validate:"omitnil,language"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitnil,media_url"`
}

func (r *UpdateTipRequest) Normalize() {
	trimPtr(r.Title)
	sanitizeBodyPtr(r.Content)
	trimPtr(r.Category)
	trimPtr(r.Language)
	trimPtr(r.ImageURL)
}

func (r *UpdateTipRequest) apply(t *models.Tip) {
	if r.Title != nil {
		t.Title = *r.Title
	}
	if r.Content != nil {
		t.Content = *r.Content
	}
	if r.Category != nil {
		t.Category = models.Category(*r.Category)
	}
	if r.Language != nil {
		t.Language = models.Language(*r.Language)
	}
	if r.ImageURL != nil {
		t.ImageURL = *r.ImageURL
	}
}

// TipHandler handles tip-related HTTP requests
type TipHandler struct {
	tips   repositories.TipRepository
	txMgr  repositories.TransactionManager
	logger *zap.Logger
}

// NewTipHandler creates a new TipHandler
func NewTipHandler(tips repositories.TipRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *TipHandler {
	return &TipHandler{
		tips:   tips,
		txMgr:  txMgr,
		logger: logger,
	}
}

// HandleList handles GET /tips
func (h *TipHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	filter, err := parseContentFilter(r)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	tips, err := h.tips.List(r.Context(), filter)
	if err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, nil), logger)
		return
	}
	if tips == nil {
		tips = []*models.Tip{}
	}

	_ = utils.WriteList(w, len(tips), tips)
}

// HandleGet handles GET /tips/{id}
func (h *TipHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrTipNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	tip, err := h.tips.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, services.ErrTipNotFound), logger)
		return
	}

	_ = utils.WriteOK(w, tip)
}

// HandleCreate handles POST /tips
func (h *TipHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	var req CreateTipRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	tip := models.NewTip(req.Title, req.Content, models.Category(req.Category), models.Language(req.Language))
	tip.ImageURL = req.ImageURL

	if err := h.tips.Create(r.Context(), tip); err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, nil), logger)
		return
	}

	logger.Info("tip created", zap.String("tip_id", tip.ID.String()))

	_ = utils.WriteCreated(w, "", tip)
}

// HandleUpdate handles PATCH /tips/{id}
func (h *TipHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrTipNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	var req UpdateTipRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	tip, err := services.WithTransactionResult(r.Context(), h.txMgr, func(ctx context.Context) (*models.Tip, error) {
		tip, err := h.tips.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, services.FromRepositoryError(err, services.ErrTipNotFound)
		}

		req.apply(tip)

		if err := h.tips.Update(ctx, tip); err != nil {
			return nil, services.FromRepositoryError(err, services.ErrTipNotFound)
		}
		return tip, nil
	})
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	logger.Info("tip updated", zap.String("tip_id", tip.ID.String()))

	_ = utils.WriteOK(w, tip)
}

// HandleDelete handles DELETE /tips/{id}
func (h *TipHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrTipNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	if err := h.tips.Delete(r.Context(), id); err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, services.ErrTipNotFound), logger)
		return
	}

	logger.Info("tip deleted", zap.String("tip_id", id.String()))

	utils.WriteNoContent(w)
}
