package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iwellness/admin-users/internal/api/middleware"
	"github.com/iwellness/admin-users/internal/core/domain"
)

// ctxSubject returns the token subject injected by the Auth middleware. An
// empty subject means the middleware did not run.
func ctxSubject(c echo.Context) (string, error) {
	email, _ := c.Get(middleware.CtxEmail).(string)
	if email == "" {
		return "", domain.ErrUnauthenticated
	}
	return email, nil
}

// bearer returns the raw bearer token, either from the Auth middleware or
// straight from the Authorization header on unprotected routes.
func bearer(c echo.Context) (string, error) {
	if token, _ := c.Get(middleware.CtxToken).(string); token != "" {
		return token, nil
	}
	return middleware.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
}
