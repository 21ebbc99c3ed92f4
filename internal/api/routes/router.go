package routes

import (
	"net/http"

	"github.com/PIGAsHIT/audiophile-proof/internal/api/handlers"
	"github.com/PIGAsHIT/audiophile-proof/internal/api/middleware"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler           *handlers.AuthHandler
	recommendationHandler *handlers.RecommendationHandler
	userHandler           *handlers.UserHandler

	tokenResolver middleware.TokenResolver
	metrics       *observability.Metrics
	staticDir     string
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	recommendationHandler *handlers.RecommendationHandler,
	userHandler *handlers.UserHandler,
	tokenResolver middleware.TokenResolver,
	metrics *observability.Metrics,
	staticDir string,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:           authHandler,
		recommendationHandler: recommendationHandler,
		userHandler:           userHandler,

		tokenResolver: tokenResolver,
		metrics:       metrics,
		staticDir:     staticDir,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /auth/token", r.authHandler.Token)

	// Recommendation endpoint; identity is optional here
	r.mux.HandleFunc("POST /recommend", r.recommendationHandler.Recommend)

	// Authenticated endpoints
	requireUser := middleware.RequireUser(r.tokenResolver)

	r.mux.Handle("GET /auth/users/me", requireUser(http.HandlerFunc(r.authHandler.Me)))

	r.mux.Handle("POST /user/favorites", requireUser(http.HandlerFunc(r.userHandler.AddFavorite)))
	r.mux.Handle("GET /user/favorites", requireUser(http.HandlerFunc(r.userHandler.ListFavorites)))
	r.mux.Handle("DELETE /user/favorites/{track_id}", requireUser(http.HandlerFunc(r.userHandler.RemoveFavorite)))
	r.mux.Handle("GET /user/favorites/check/{track_id}", requireUser(http.HandlerFunc(r.userHandler.CheckFavorite)))
	r.mux.Handle("GET /user/history", requireUser(http.HandlerFunc(r.userHandler.History)))

	// Metrics endpoint
	if r.metrics != nil {
		r.mux.Handle("GET /metrics", r.metrics.Handler())
	}

	// Static front page
	if r.staticDir != "" {
		fileServer := http.FileServer(http.Dir(r.staticDir))
		r.mux.Handle("GET /static/", http.StripPrefix("/static/", fileServer))
		r.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, r.staticDir+"/index.html")
		})
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.MetricsMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
