package jobs

import (
	"github.com/jobly/jobly/pkg/auth"
	"github.com/jobly/jobly/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers job routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	registerRoutes(g, NewService(db), authMiddleware)
}

func registerRoutes(g *echo.Group, store jobStore, authMiddleware *auth.Middleware) {
	h := &handler{
		jobService: store,
	}

	write := []echo.MiddlewareFunc{
		authMiddleware.Authenticate,
		authMiddleware.RequirePermission(models.ResourceJobs, models.OperationWrite),
	}

	g.POST("", h.create, write...)
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.PATCH("/:id", h.update, write...)
	g.DELETE("/:id", h.delete, write...)
}
