package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newAuthTestApp() *fiber.App {
	// Validation runs before any repository access, so a nil repo is
	// safe for these paths.
	handler := &AuthHandler{jwtSecret: "test-secret"}

	app := fiber.New()
	app.Post("/api/v1/users/register", handler.Register)
	app.Post("/api/v1/users/login", handler.Login)
	return app
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{
			name: "missing username",
			body: `{"email": "lifter@example.com", "password": "longenough"}`,
		},
		{
			name: "invalid email",
			body: `{"username": "lifter", "email": "not-an-email", "password": "longenough"}`,
		},
		{
			name: "short password",
			body: `{"username": "lifter", "email": "lifter@example.com", "password": "short"}`,
		},
	}

	app := newAuthTestApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(
				http.MethodPost,
				"/api/v1/users/register",
				strings.NewReader(tc.body),
			)
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestLoginRejectsInvalidEmail(t *testing.T) {
	app := newAuthTestApp()

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/users/login",
		strings.NewReader(`{"email": "nope", "password": "whatever"}`),
	)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}
