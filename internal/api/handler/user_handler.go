package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/policy"
	"github.com/iwellness/admin-users/internal/core/ports"
)

// UserHandler serves the protected /users routes. Mounted behind Auth.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Get returns an identity with its profile. Admins or the owner only.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Identity id"
// @Success      200  {object}  domain.UserDetails
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, id, err := h.resolve(c)
	if err != nil {
		return err
	}
	details, err := h.users.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// Delete removes an identity and its profile. Admins only.
//
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path      int  true  "Identity id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, id, err := h.resolve(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) resolve(c echo.Context) (policy.Actor, int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return policy.Actor{}, 0, domain.ErrInvalidPayload
	}
	email, err := ctxSubject(c)
	if err != nil {
		return policy.Actor{}, 0, err
	}
	actor, err := h.users.ResolveActor(c.Request().Context(), email)
	if err != nil {
		return policy.Actor{}, 0, err
	}
	return actor, id, nil
}
