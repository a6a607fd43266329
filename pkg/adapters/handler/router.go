package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/minilink/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(
	logger zerolog.Logger,
	repo ports.Repository,
	tokens ports.AuthTokens,
	users ports.UserService,
	links ports.LinkService,
	analytics ports.AnalyticsService,
) http.Handler {
	// Initialize Handlers
	uh := NewUserHandler(users, logger)
	lh := NewLinkHandler(links, logger)
	ah := NewAnalyticsHandler(analytics, logger)

	// Initialize Middleware
	mw := NewMiddleware(tokens, repo, logger)

	// Setup Router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	// Public Routes
	mux.HandleFunc("POST /api/user/register", uh.Register)
	mux.HandleFunc("POST /api/user/login", uh.Login)
	// Literal segments win over the wildcard, so this never shadows the
	// named routes below.
	mux.HandleFunc("GET /api/user/{shortUrlCode}", lh.Redirect)

	// Protected Routes
	protected := func(h http.HandlerFunc) http.Handler {
		return mw.Authenticate(h)
	}
	mux.Handle("PUT /api/user/edituser", protected(uh.Update))
	mux.Handle("GET /api/user/getusername", protected(uh.GetName))
	mux.Handle("DELETE /api/user/deleteuser", protected(uh.Delete))

	mux.Handle("POST /api/user/createlink", protected(lh.Create))
	mux.Handle("DELETE /api/user/deletelink/{id}", protected(lh.Delete))
	mux.Handle("PUT /api/user/editlink/{id}", protected(lh.Edit))
	mux.Handle("GET /api/user/userlinks/data", protected(lh.List))
	mux.Handle("GET /api/user/userlinks/{id}", protected(lh.GetByID))

	mux.Handle("GET /api/user/click/userclicks", protected(ah.TotalClicks))
	mux.Handle("GET /api/user/click/userclicksoverall", protected(ah.OverallTotalClicks))
	mux.Handle("GET /api/user/userclicks/datewise", protected(ah.ClicksByDate))
	mux.Handle("GET /api/user/userclicks/devicewise", protected(ah.ClicksByDevice))

	return RequestLogger(logger)(mux)
}
