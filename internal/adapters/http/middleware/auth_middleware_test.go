package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finser-backend/internal/config"
	"finser-backend/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newGuardedApp(t *testing.T, cfg *config.Config, extra ...fiber.Handler) (*fiber.App, *int) {
	t.Helper()
	app := fiber.New()
	calls := 0

	handlers := []fiber.Handler{AuthMiddleware(cfg)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		calls++
		return c.SendStatus(fiber.StatusOK)
	})

	app.Get("/guarded", handlers...)
	return app, &calls
}

func accessTokenFor(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(1, "user@example.com", role, cfg.JWT.Secret, cfg.JWT.AccessTokenMins)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	return token
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app, calls := newGuardedApp(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
	if *calls != 0 {
		t.Error("Handler must not run without a token")
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	app, calls := newGuardedApp(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
	if *calls != 0 {
		t.Error("Handler must not run with an invalid token")
	}
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	cfg := testConfig()
	app, calls := newGuardedApp(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, cfg, "USER"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if *calls != 1 {
		t.Errorf("Handler calls = %d, want 1", *calls)
	}
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	cfg := testConfig()
	app, calls := newGuardedApp(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: accessTokenFor(t, cfg, "USER")})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("Status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	if *calls != 1 {
		t.Errorf("Handler calls = %d, want 1", *calls)
	}
}

func TestAdminOnly(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"user forbidden", "USER", fiber.StatusForbidden},
		{"admin allowed", "ADMIN", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newGuardedApp(t, cfg, AdminOnly())

			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, cfg, tt.role))
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
