package testutils

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/jobly/jobly/pkg/auth"
	"github.com/jobly/jobly/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// createUserRequest is the request body for creating a test user.
type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" default:"admin" validate:"oneof=admin viewer"`
}

// createUserResponse is the response body for creating a test user.
type createUserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// createUser creates a test user, an admin unless another role is given.
// POST /test/users.
func (h *handler) createUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	role := &models.Role{}
	err := h.db.NewSelect().
		Model(role).
		Where("name = ?", req.Role).
		Scan(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to get %s role", req.Role)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     req.Username,
		FirstName:    "Test",
		LastName:     "User",
		Email:        req.Username + "@example.com",
		PasswordHash: hashedPassword,
		RoleID:       role.ID,
		IsActive:     true,
	}

	_, err = h.db.NewInsert().Model(user).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	return c.JSON(http.StatusCreated, createUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     role.Name,
	})
}

// deleteAllResponse reports how many rows were removed.
type deleteAllResponse struct {
	Deleted int `json:"deleted"`
}

// deleteAllUsers deletes all users from the database.
// DELETE /test/users.
func (h *handler) deleteAllUsers(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.User)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete users")
	}

	deleted, _ := result.RowsAffected()

	return c.JSON(http.StatusOK, deleteAllResponse{
		Deleted: int(deleted),
	})
}

// deleteAllData deletes every job and company, leaving users in place.
// DELETE /test/data.
func (h *handler) deleteAllData(c echo.Context) error {
	var deleted int64

	err := h.db.RunInTx(c.Request().Context(), &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{(*models.Job)(nil), (*models.Company)(nil)} {
			result, err := tx.NewDelete().
				Model(model).
				Where("1=1").
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			n, _ := result.RowsAffected()
			deleted += n
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete data")
	}

	return c.JSON(http.StatusOK, deleteAllResponse{
		Deleted: int(deleted),
	})
}
