package auth

import (
	"net/http"

	"github.com/jobly/jobly/pkg/errcodes"
	"github.com/jobly/jobly/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	authService *Service
}

// buildMeResponse builds a MeResponse from a user model.
func buildMeResponse(user *models.User) MeResponse {
	resp := MeResponse{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		IsAdmin:     user.IsAdmin(),
		Permissions: make([]string, 0),
	}
	if user.Role != nil {
		resp.RoleName = user.Role.Name
		for _, p := range user.Role.Permissions {
			resp.Permissions = append(resp.Permissions, p.String())
		}
	}
	return resp
}

// token exchanges credentials for a bearer token.
func (h *handler) token(c echo.Context) error {
	ctx := c.Request().Context()

	params := TokenPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Authenticate(ctx, params.Username, params.Password)
	if err != nil {
		return err
	}

	return h.respondWithToken(c, http.StatusOK, user)
}

// register creates a viewer account and returns a token for it.
func (h *handler) register(c echo.Context) error {
	ctx := c.Request().Context()

	params := RegisterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Register(ctx, params.options(models.RoleViewer))
	if err != nil {
		return err
	}

	return h.respondWithToken(c, http.StatusCreated, user)
}

// setup creates the first admin user.
func (h *handler) setup(c echo.Context) error {
	ctx := c.Request().Context()

	params := RegisterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.CreateFirstAdmin(ctx, params.options(models.RoleAdmin))
	if err != nil {
		return err
	}

	return h.respondWithToken(c, http.StatusCreated, user)
}

// status returns whether the app needs initial setup.
func (h *handler) status(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.authService.CountUsers(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, StatusResponse{
		NeedsSetup: count == 0,
	})
}

// me returns the current authenticated user's info.
func (h *handler) me(c echo.Context) error {
	user, ok := c.Get("user").(*models.User)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}
	return c.JSON(http.StatusOK, buildMeResponse(user))
}

func (h *handler) respondWithToken(c echo.Context, status int, user *models.User) error {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return errors.WithStack(err)
	}
	return c.JSON(status, TokenResponse{Token: token})
}
