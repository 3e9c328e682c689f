package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"careerlink/internal/domain/user"
	"careerlink/internal/pkg/response"
	"careerlink/internal/usecase"
	ucauth "careerlink/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type mockAuth struct {
	users map[string]user.User
	err   error
}

func (m mockAuth) Register(context.Context, ucauth.RegisterInput) (user.User, string, error) {
	return user.User{}, "", nil
}
func (m mockAuth) Login(context.Context, ucauth.LoginInput) (user.User, string, error) {
	return user.User{}, "", nil
}
func (m mockAuth) AdminLogin(context.Context, string, string) (user.User, string, error) {
	return user.User{}, "", nil
}
func (m mockAuth) ForgotPassword(context.Context, string) error { return nil }
func (m mockAuth) Authenticate(_ context.Context, token string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[token]
	if !ok {
		return user.User{}, usecase.ErrTokenInvalid
	}
	return u, nil
}

func newTestApp(auth usecase.AuthUsecase, roles ...user.Role) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/protected", NewAuthMiddleware(auth).Middleware(), RequireRoles(roles...), func(c fiber.Ctx) error {
		u, _ := CurrentUser(c)
		return response.OK(c, "ok", u.Email)
	})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, response.SemanticResponse) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var out response.SemanticResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return resp.StatusCode, out
}

func withToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthMiddleware(t *testing.T) {
	auth := mockAuth{users: map[string]user.User{
		"student": {ID: uuid.New(), Email: "s@gmail.com", Role: user.RoleStudent, IsActive: true, IsApproved: true},
		"pending": {ID: uuid.New(), Email: "p@gmail.com", Role: user.RoleCompany, IsActive: true},
		"company": {ID: uuid.New(), Email: "c@gmail.com", Role: user.RoleCompany, IsActive: true, IsApproved: true},
	}}
	app := newTestApp(auth, user.RoleCompany)

	cases := []struct {
		name   string
		token  string
		status int
		msg    string
	}{
		{"no token", "", fiber.StatusUnauthorized, "No token, authorization denied"},
		{"bad token", "garbage", fiber.StatusUnauthorized, "Token is not valid"},
		{"wrong role", "student", fiber.StatusForbidden, "Access denied. Insufficient permissions."},
		{"pending company", "pending", fiber.StatusForbidden, "Company account pending approval"},
		{"approved company", "company", fiber.StatusOK, "ok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, app, withToken(tc.token))
			if status != tc.status || body.Message != tc.msg {
				t.Fatalf("expected %d %q, got %d %q", tc.status, tc.msg, status, body.Message)
			}
		})
	}
}

func TestAuthMiddleware_InactiveAccount(t *testing.T) {
	app := newTestApp(mockAuth{err: usecase.ErrInactiveAccount}, user.RoleStudent)
	status, body := do(t, app, withToken("anything"))
	if status != fiber.StatusUnauthorized || body.Message != "Invalid or inactive token" {
		t.Fatalf("unexpected %d %q", status, body.Message)
	}
}

func TestAuthMiddleware_StoreFailureIsInternal(t *testing.T) {
	app := newTestApp(mockAuth{err: errors.New("db down")}, user.RoleStudent)
	status, body := do(t, app, withToken("anything"))
	if status != fiber.StatusInternalServerError || body.Message != response.MessageInternalServerError {
		t.Fatalf("unexpected %d %q", status, body.Message)
	}
}

func TestRequireRoles_WithoutAuthentication(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/x", RequireRoles(user.RoleAdmin), func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/x", nil))
	if status != fiber.StatusUnauthorized || body.Message != "Unauthorized" {
		t.Fatalf("unexpected %d %q", status, body.Message)
	}
}

func TestBearerTokenFromHeader(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
		"Bearer    ":   "",
	}
	for in, want := range cases {
		got, ok := bearerTokenFromHeader(in)
		if got != want || ok != (want != "") {
			t.Fatalf("bearerTokenFromHeader(%q) = %q, %v", in, got, ok)
		}
	}
}

func TestErrorMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/panic", func(c fiber.Ctx) error { panic("boom") })
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "secret detail", nil, errors.New("pg: down"))
	})
	app.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "User already exists", nil, nil)
	})
	app.Get("/fiber", func(c fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad body") })

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/panic", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/internal", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/conflict", fiber.StatusConflict, "User already exists"},
		{"/fiber", fiber.StatusBadRequest, "bad body"},
	}
	for _, tc := range cases {
		status, body := do(t, app, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if status != tc.status || body.Message != tc.msg || body.Status != tc.status {
			t.Fatalf("%s: expected %d %q, got %d %+v", tc.path, tc.status, tc.msg, status, body)
		}
	}
}

func TestLoginRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Post("/login", LoginRateLimiter(2), func(c fiber.Ctx) error { return response.OK(c, "ok", nil) })

	for i := 0; i < 2; i++ {
		if status, _ := do(t, app, httptest.NewRequest(http.MethodPost, "/login", nil)); status != fiber.StatusOK {
			t.Fatalf("attempt %d: unexpected status %d", i+1, status)
		}
	}
	status, body := do(t, app, httptest.NewRequest(http.MethodPost, "/login", nil))
	if status != fiber.StatusTooManyRequests || body.Message != response.MessageTooManyRequests {
		t.Fatalf("expected limit, got %d %q", status, body.Message)
	}
}

func TestAccessLogMiddleware_SetsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(nil).Middleware())
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given")
	resp, _ = app.Test(req)
	if got := resp.Header.Get("X-Request-ID"); got != "given" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}
}
