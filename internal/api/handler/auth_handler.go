package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iwellness/admin-users/internal/api/metrics"
	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password"`
}

// UnmarshalJSON also accepts the "correo" and "contraseña" keys.
func (r *loginRequest) UnmarshalJSON(data []byte) error {
	type plain loginRequest
	var en plain
	if err := json.Unmarshal(data, &en); err != nil {
		return err
	}
	var es struct {
		Correo     string `json:"correo"`
		Contrasena string `json:"contraseña"`
	}
	if err := json.Unmarshal(data, &es); err != nil {
		return err
	}

	*r = loginRequest(en)
	fallback(&r.Email, es.Correo)
	fallback(&r.Password, es.Contrasena)
	return nil
}

type loginResponse struct {
	Token string           `json:"token"`
	User  *domain.Identity `json:"user"`
}

type roleResponse struct {
	Role string `json:"role"`
}

type subjectResponse struct {
	Subject string `json:"subject"`
}

// Login authenticates an identity and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Role returns the role claim of the bearer token.
//
// @Summary      Role from token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  roleResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/role [get]
func (h *AuthHandler) Role(c echo.Context) error {
	token, err := bearer(c)
	if err != nil {
		return err
	}
	role, err := h.authService.RoleFromToken(token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleResponse{Role: role})
}

// Subject returns the subject (email) claim of the bearer token.
//
// @Summary      Subject from token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  subjectResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/subject [get]
func (h *AuthHandler) Subject(c echo.Context) error {
	token, err := bearer(c)
	if err != nil {
		return err
	}
	subject, err := h.authService.SubjectFromToken(token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subjectResponse{Subject: subject})
}

// Info returns the identity behind the bearer token with its profile.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  domain.UserDetails
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/info [get]
func (h *AuthHandler) Info(c echo.Context) error {
	token, err := bearer(c)
	if err != nil {
		return err
	}
	details, err := h.authService.CurrentUser(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}
