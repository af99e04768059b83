package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/healthedu-backend/app"
	"github.com/upb/healthedu-backend/middleware"
	"github.com/upb/healthedu-backend/models"
	"github.com/upb/healthedu-backend/services"
	"github.com/upb/healthedu-backend/utils"
)

// contentRoutes is the handler set shared by articles, videos and tips
type contentRoutes interface {
	HandleList(w http.ResponseWriter, r *http.Request)
	HandleGet(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
	HandleUpdate(w http.ResponseWriter, r *http.Request)
	HandleDelete(w http.ResponseWriter, r *http.Request)
}

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	if deps.Config.Server.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(chimw.Timeout(deps.Config.Server.RequestTimeout))

	// CORS for the browser frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Unknown routes and methods share the error body
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		err := services.NewDomainError(services.ErrorTypeNotFound, "Can't find "+r.URL.Path+" on this server", nil)
		utils.HandleServiceError(w, err, deps.Logger)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		err := services.NewDomainError(services.ErrorTypeMethod, "Method "+r.Method+" is not allowed on "+r.URL.Path, nil)
		utils.HandleServiceError(w, err, deps.Logger)
	})

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleLiveness)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	requireAdmin := deps.AuthMiddleware.RequireRole(models.RoleAdmin)

	r.Route("/auth", func(r chi.Router) {
		r.With(deps.RateLimiter.Limit).Post("/login", deps.AuthHandler.HandleLogin)
		r.With(deps.AuthMiddleware.RequireAuth).Get("/me", deps.AuthHandler.HandleMe)
	})

	mountContent(r, "/articles", deps.ArticleHandler, deps.AuthMiddleware.RequireAuth, requireAdmin)
	mountContent(r, "/videos", deps.VideoHandler, deps.AuthMiddleware.RequireAuth, requireAdmin)
	mountContent(r, "/tips", deps.TipHandler, deps.AuthMiddleware.RequireAuth, requireAdmin)

	r.Route("/contact", func(r chi.Router) {
		r.With(deps.RateLimiter.Limit).Post("/", deps.ContactHandler.HandleCreate)

		// Submissions are read by admins only
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Use(requireAdmin)
			r.Get("/", deps.ContactHandler.HandleList)
			r.Get("/{id}", deps.ContactHandler.HandleGet)
		})
	})

	return r
}

// mountContent registers public reads and admin-only writes for one content kind
func mountContent(r chi.Router, pattern string, h contentRoutes, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(requireAdmin)
			r.Post("/", h.HandleCreate)
			r.Patch("/{id}", h.HandleUpdate)
			r.Delete("/{id}", h.HandleDelete)
		})
	})
}
