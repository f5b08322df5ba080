package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns all accounts as public views. The classroom router mounts
// this admin-only; the chat router mounts it for any authenticated user,
// decorated with presence.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.PublicUser
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
