package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iwellness/admin-users/internal/api/metrics"
	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/ports"
)

const (
	msgResetRequested = "Correo de recuperación enviado"
	msgResetCompleted = "Contraseña restablecida correctamente"
)

type ResetHandler struct {
	resets ports.PasswordResetService
}

func NewResetHandler(resets ports.PasswordResetService) *ResetHandler {
	return &ResetHandler{resets: resets}
}

type requestResetRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// RequestReset mails a password reset link. The email may also be passed as
// the "correo" query parameter.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body    body      requestResetRequest  false  "Account email"
// @Param        correo  query     string               false  "Account email"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /auth/request-reset-password [post]
func (h *ResetHandler) RequestReset(c echo.Context) error {
	var req requestResetRequest
	if err := bindOptional(c, &req); err != nil {
		return err
	}
	if req.Email == "" {
		req.Email = c.QueryParam("correo")
	}

	if err := h.resets.RequestReset(c.Request().Context(), req.Email); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("request", metrics.ResultFailure).Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("request", metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: msgResetRequested})
}

// ResetPassword redeems a reset token. Token and password may also be passed
// as the "token" and "nuevaContrasena" query parameters.
//
// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body             body      resetPasswordRequest  false  "Token and new password"
// @Param        token            query     string                false  "Reset token"
// @Param        nuevaContrasena  query     string                false  "New password"
// @Success      200              {object}  messageResponse
// @Failure      400              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *ResetHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindOptional(c, &req); err != nil {
		return err
	}
	if req.Token == "" {
		req.Token = c.QueryParam("token")
	}
	if req.NewPassword == "" {
		req.NewPassword = c.QueryParam("nuevaContrasena")
	}

	if err := h.resets.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("redeem", metrics.ResultFailure).Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("redeem", metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: msgResetCompleted})
}

// bindOptional binds a JSON body when one is present.
func bindOptional(c echo.Context, dst any) error {
	if c.Request().ContentLength == 0 {
		return nil
	}
	if err := c.Bind(dst); err != nil {
		return domain.ErrInvalidPayload
	}
	return nil
}
