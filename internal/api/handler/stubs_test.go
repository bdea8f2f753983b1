package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/policy"
	"github.com/iwellness/admin-users/internal/core/ports"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, email, password string) (string, *domain.Identity, error)
	roleFn    func(token string) (string, error)
	subjectFn func(token string) (string, error)
	currentFn func(ctx context.Context, token string) (*domain.UserDetails, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) RoleFromToken(token string) (string, error) {
	return s.roleFn(token)
}

func (s *stubAuthService) SubjectFromToken(token string) (string, error) {
	return s.subjectFn(token)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, token string) (*domain.UserDetails, error) {
	return s.currentFn(ctx, token)
}

type stubRegistrationService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput, role string) (*ports.RegistrationResult, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, in ports.RegisterInput, role string) (*ports.RegistrationResult, error) {
	return s.registerFn(ctx, in, role)
}

type stubResetService struct {
	requestFn func(ctx context.Context, email string) error
	resetFn   func(ctx context.Context, token, newPassword string) error
}

func (s *stubResetService) RequestReset(ctx context.Context, email string) error {
	return s.requestFn(ctx, email)
}

func (s *stubResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.resetFn(ctx, token, newPassword)
}

type stubUserService struct {
	resolveFn func(ctx context.Context, email string) (policy.Actor, error)
	getFn     func(ctx context.Context, actor policy.Actor, id int64) (*domain.UserDetails, error)
	deleteFn  func(ctx context.Context, actor policy.Actor, id int64) error
}

func (s *stubUserService) ResolveActor(ctx context.Context, email string) (policy.Actor, error) {
	return s.resolveFn(ctx, email)
}

func (s *stubUserService) Get(ctx context.Context, actor policy.Actor, id int64) (*domain.UserDetails, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubUserService) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

// newContext builds an echo context with the validator installed. A non-nil
// body is sent as JSON.
func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
