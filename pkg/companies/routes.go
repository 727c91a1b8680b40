package companies

import (
	"github.com/jobly/jobly/pkg/auth"
	"github.com/jobly/jobly/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers company routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	companyService := NewService(db)

	h := &handler{
		companyService: companyService,
	}

	write := []echo.MiddlewareFunc{
		authMiddleware.Authenticate,
		authMiddleware.RequirePermission(models.ResourceCompanies, models.OperationWrite),
	}

	g.POST("", h.create, write...)
	g.GET("", h.list)
	g.GET("/:handle", h.retrieve)
	g.PATCH("/:handle", h.update, write...)
	g.DELETE("/:handle", h.delete, write...)
}
