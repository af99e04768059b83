package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/upb/healthedu-backend/middleware"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/services"
	"github.com/upb/healthedu-backend/utils"
	"go.uber.org/zap"
)

// bodyPolicy keeps basic formatting in article and tip bodies and drops
// scripts, event handlers and unsafe URLs. Policies are safe for concurrent use.
var bodyPolicy = bluemonday.UGCPolicy()

func sanitizeBody(s string) string {
	return strings.TrimSpace(bodyPolicy.Sanitize(s))
}

func sanitizeBodyPtr(s *string) {
	if s != nil {
		*s = sanitizeBody(*s)
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// contentQuery holds the optional list filters
type contentQuery struct {
	Category string `json:"category" validate:"omitempty,category"`
	Language string `json:"language" validate:"omitempty,language"`
}

// parseContentFilter reads ?category= and ?language= into a filter.
// Unknown values are a validation error rather than an empty result.
func parseContentFilter(r *http.Request) (models.ContentFilter, error) {
	q := contentQuery{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Language: strings.TrimSpace(r.URL.Query().Get("language")),
	}

	var filter models.ContentFilter
	if err := utils.ValidateStruct(&q); err != nil {
		return filter, err
	}

	if q.Category != "" {
		c := models.Category(q.Category)
		filter.Category = &c
	}
	if q.Language != "" {
		l := models.Language(q.Language)
		filter.Language = &l
	}

	return filter, nil
}

// parseID reads the {id} route param. A malformed id cannot name a stored
// record, so it is reported as notFound.
func parseID(r *http.Request, notFound *services.DomainError) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// requestLogger returns logger annotated with the request id
func requestLogger(logger *zap.Logger, r *http.Request) *zap.Logger {
	return logger.With(zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))
}
