package roles

import (
	"github.com/jobly/jobly/pkg/auth"
	"github.com/jobly/jobly/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers all role routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	roleService := NewService(db)

	h := &handler{
		roleService: roleService,
	}

	roles := e.Group("/roles")

	// Roles are part of user management
	roles.Use(authMiddleware.Authenticate)
	roles.Use(authMiddleware.RequirePermission(models.ResourceUsers, models.OperationRead))

	roles.GET("", h.list)
	roles.GET("/:id", h.retrieve)

	return roleService
}
