package auth

import (
	"github.com/jobly/jobly/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// RegisterRoutes registers all auth routes and returns the service and
// middleware the rest of the API authenticates with. Every /auth route is
// rate limited per client IP.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) (*Service, *Middleware) {
	authService := NewService(db, cfg.JWTSecret, cfg.TokenExpiry)
	authMiddleware := NewMiddleware(authService)

	h := &handler{
		authService: authService,
	}

	limiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.AuthRateLimit)))

	g := e.Group("/auth", limiter)
	g.POST("/token", h.token)
	g.POST("/register", h.register)
	g.POST("/setup", h.setup)
	g.GET("/status", h.status)
	g.GET("/me", h.me, authMiddleware.Authenticate)

	return authService, authMiddleware
}
