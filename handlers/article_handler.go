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

// CreateArticleRequest represents a request to create an article
type CreateArticleRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Content  string `json:"content" validate:"required,min=10"`
	Summary  string `json:"summary" validate:"omitempty,max=500"`
	Author   string `json:"author" validate:"omitempty,max=100"`
	Category string `json:"category" validate:"required,category"`
	Language string `json:"language" validate:"required,language"`
	ImageURL string `json:"image_url" validate:"omitempty,http_url"`
	VideoURL string `json:"video_url" validate:"omitempty,http_url"`
}

// Normalize trims fields and sanitizes the body
func (r *CreateArticleRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = sanitizeBody(r.Content)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Author = strings.TrimSpace(r.Author)
	r.Category = strings.TrimSpace(r.Category)
	r.Language = strings.TrimSpace(r.Language)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.VideoURL = strings.TrimSpace(r.VideoURL)
}

// UpdateArticleRequest represents a partial article update. Absent fields are left unchanged.
type UpdateArticleRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitnil,min=3,max=200"`
	Content  *string `json:"content,omitempty" validate:"omitnil,min=10"`
	Summary  *string `json:"summary,omitempty" validate:"omitnil,max=500"`
	Author   *string `json:"author,omitempty" validate:"omitnil,max=100"`
	Category *string `json:"category,omitempty" validate:"omitnil,category"`
	Language *string `json:"language,omitempty" validate:"omitnil,language"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitnil,media_url"`
	VideoURL *string `json:"video_url,omitempty" validate:"omitnil,media_url"`
}

// Normalize trims fields and sanitizes the body
func (r *UpdateArticleRequest) Normalize() {
	trimPtr(r.Title)
	sanitizeBodyPtr(r.Content)
	trimPtr(r.Summary)
	trimPtr(r.Author)
	trimPtr(r.Category)
	trimPtr(r.Language)
	trimPtr(r.ImageURL)
	trimPtr(r.VideoURL)
}

func (r *UpdateArticleRequest) apply(a *models.Article) {
	if r.Title != nil {
		a.Title = *r.Title
	}
	if r.Content != nil {
		a.Content = *r.Content
	}
	if r.Summary != nil {
		a.Summary = *r.Summary
	}
	if r.Author != nil {
		a.Author = *r.Author
	}
	if r.Category != nil {
		a.Category = models.Category(*r.Category)
	}
	if r.Language != nil {
		a.Language = models.Language(*r.Language)
	}
	if r.ImageURL != nil {
		a.ImageURL = *r.ImageURL
	}
	if r.VideoURL != nil {
		a.VideoURL = *r.VideoURL
	}
}

// ArticleHandler handles article-related HTTP requests
type ArticleHandler struct {
	articles repositories.ArticleRepository
	txMgr    repositories.TransactionManager
	logger   *zap.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articles repositories.ArticleRepository, txMgr repositories.TransactionManager, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		txMgr:    txMgr,
		logger:   logger,
	}
}

// HandleList handles GET /articles
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	filter, err := parseContentFilter(r)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	articles, err := h.articles.List(r.Context(), filter)
	if err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, nil), logger)
		return
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	logger.Debug("listed articles", zap.Int("count", len(articles)))

	_ = utils.WriteList(w, len(articles), articles)
}

// HandleGet handles GET /articles/{id}
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrArticleNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	article, err := h.articles.GetByID(r.Context(), id)
	if err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, services.ErrArticleNotFound), logger)
		return
	}

	_ = utils.WriteOK(w, article)
}

// HandleCreate handles POST /articles
func (h *ArticleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	var req CreateArticleRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		logger.Debug("article request rejected", zap.Error(err))
		utils.HandleServiceError(w, err, logger)
		return
	}

	article := models.NewArticle(req.Title, req.Content, models.Category(req.Category), models.Language(req.Language))
	article.Summary = req.Summary
	article.Author = req.Author
	article.ImageURL = req.ImageURL
	article.VideoURL = req.VideoURL

	if err := h.articles.Create(r.Context(), article); err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, nil), logger)
		return
	}

	logger.Info("article created",
		zap.String("article_id", article.ID.String()),
		zap.String("category", string(article.Category)))

	_ = utils.WriteCreated(w, "", article)
}

// HandleUpdate handles PATCH /articles/{id}
func (h *ArticleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrArticleNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	var req UpdateArticleRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		logger.Debug("article request rejected", zap.Error(err))
		utils.HandleServiceError(w, err, logger)
		return
	}

	article, err := services.WithTransactionResult(r.Context(), h.txMgr, func(ctx context.Context) (*models.Article, error) {
		article, err := h.articles.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, services.FromRepositoryError(err, services.ErrArticleNotFound)
		}

		req.apply(article)

		if err := h.articles.Update(ctx, article); err != nil {
			return nil, services.FromRepositoryError(err, services.ErrArticleNotFound)
		}
		return article, nil
	})
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	logger.Info("article updated", zap.String("article_id", article.ID.String()))

	_ = utils.WriteOK(w, article)
}

// HandleDelete handles DELETE /articles/{id}
func (h *ArticleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	id, err := parseID(r, services.ErrArticleNotFound)
	if err != nil {
		utils.HandleServiceError(w, err, logger)
		return
	}

	if err := h.articles.Delete(r.Context(), id); err != nil {
		utils.HandleServiceError(w, services.FromRepositoryError(err, services.ErrArticleNotFound), logger)
		return
	}

	logger.Info("article deleted", zap.String("article_id", id.String()))

	utils.WriteNoContent(w)
}
