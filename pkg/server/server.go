package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jobly/jobly/pkg/auth"
	"github.com/jobly/jobly/pkg/binder"
	"github.com/jobly/jobly/pkg/companies"
	"github.com/jobly/jobly/pkg/config"
	"github.com/jobly/jobly/pkg/errcodes"
	"github.com/jobly/jobly/pkg/jobs"
	"github.com/jobly/jobly/pkg/roles"
	"github.com/jobly/jobly/pkg/testutils"
	"github.com/jobly/jobly/pkg/users"
	"github.com/jobly/jobly/pkg/version"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e, err := newEcho(cfg, db)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)
	e.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"version": version.Version})
	})

	// Register auth routes and get the middleware guarding writes
	_, authMiddleware := auth.RegisterRoutes(e, db, cfg)

	// Register user and role management routes
	users.RegisterRoutes(e, db, authMiddleware)
	roles.RegisterRoutes(e, db, authMiddleware)

	companies.RegisterRoutesWithGroup(e.Group("/companies"), db, authMiddleware)
	jobs.RegisterRoutesWithGroup(e.Group("/jobs"), db, authMiddleware)

	if cfg.Environment == config.EnvironmentTest {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
