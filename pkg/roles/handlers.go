package roles

import (
	"net/http"
	"strconv"

	"github.com/jobly/jobly/pkg/errcodes"
	"github.com/labstack/echo/v4"
)

type handler struct {
	roleService *Service
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Role")
	}

	role, err := h.roleService.Retrieve(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"role": role})
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	roles, err := h.roleService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"roles": roles})
}
