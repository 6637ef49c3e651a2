package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func protectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/me", JWTMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"email":   c.Locals("email"),
		})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	svc := NewService("test-secret", nil)
	token, err := svc.signToken("user-1", "user@example.com", accessTokenTTL)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := protectedApp("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %v %d", err, resp.StatusCode)
	}
}

func TestJWTMiddlewareMissingToken(t *testing.T) {
	app := protectedApp("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %v %d", err, resp.StatusCode)
	}
}

func TestJWTMiddlewareWrongSecret(t *testing.T) {
	svc := NewService("other-secret", nil)
	token, err := svc.signToken("user-1", "user@example.com", accessTokenTTL)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := protectedApp("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %v %d", err, resp.StatusCode)
	}
}

func TestJWTMiddlewareParseError(t *testing.T) {
	orig := parseMiddlewareClaimsFn
	parseMiddlewareClaimsFn = func(string, jwt.Claims, jwt.Keyfunc, ...jwt.ParserOption) (*jwt.Token, error) {
		return nil, errors.New("parse failed")
	}
	defer func() { parseMiddlewareClaimsFn = orig }()

	app := protectedApp("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %v %d", err, resp.StatusCode)
	}
}
