package routes

import (
	"net/http"

	"github.com/templui/brainbox/internal/app"
	"github.com/templui/brainbox/internal/handler"
	"github.com/templui/brainbox/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	system := handler.NewSystemHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	me := handler.NewMeHandler(app.UserService)
	content := handler.NewContentHandler(app.ContentService, app.ExportService)
	share := handler.NewShareHandler(app.ShareService)

	requireAuth := middleware.RequireAuth(app.TokenService)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow, app.Cfg.TrustProxy)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", system.Health)
	mux.HandleFunc("GET /api/v1/config", system.Config)

	// Auth (rate limited)
	mux.HandleFunc("POST /api/v1/signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /api/v1/signin", rateLimiter(auth.Signin))

	// Shared collections
	mux.HandleFunc("GET /api/v1/share/{hash}", share.Resolve)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/v1/me", requireAuth(me.Show))
	mux.HandleFunc("PATCH /api/v1/me", requireAuth(me.Update))

	// Content
	mux.HandleFunc("GET /api/v1/content", requireAuth(content.List))
	mux.HandleFunc("POST /api/v1/content", requireAuth(content.Create))
	mux.HandleFunc("POST /api/v1/content/export", requireAuth(content.Export))
	mux.HandleFunc("DELETE /api/v1/content/{id}", requireAuth(content.Delete))

	// Share link
	mux.HandleFunc("GET /api/v1/share", requireAuth(share.Status))
	mux.HandleFunc("POST /api/v1/share", requireAuth(share.Toggle))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", system.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.SecurityHeaders,
		middleware.CORS(app.Cfg.CORSOrigin), // Answers preflight before routing
		middleware.Config(app.Cfg),
	)

	return handler
}
