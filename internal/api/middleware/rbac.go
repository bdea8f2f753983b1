package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iwellness/admin-users/internal/core/policy"
)

// RBAC enforces role-based access control on the role claim set by Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if err := policy.Authorize(role, allowedRoles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
