package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bloodbridge/internal/domain"
	"github.com/spec-kit/bloodbridge/pkg/util"
)

func guardApp(t *testing.T, guard *Guard, required domain.Role) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", func(c *fiber.Ctx) error {
		var err error
		if required != "" {
			_, err = guard.Authorize(c, required)
		} else {
			_, err = guard.Authenticate(c)
		}
		if err != nil {
			de := util.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		}
		return c.SendString("ok")
	})
	return app
}

func TestAuthenticateMissingHeader(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	guard := NewGuard(tm, zap.NewNop())
	app := guardApp(t, guard, "")

	for _, header := range []string{"", "Bearer", "Bearer ", "bearer abc", "Token abc", "Bearer  abc", "Bearer a b"} {
		req := httptest.NewRequest("GET", "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("header %q: %v", header, err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.StatusCode)
		}
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	guard := NewGuard(tm, zap.NewNop())
	app := guardApp(t, guard, "")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	guard := NewGuard(tm, zap.NewNop())
	app := guardApp(t, guard, "")

	token, _, err := tm.Issue(9, domain.RoleDonor)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAuthorizeRoleMatrix(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	guard := NewGuard(tm, zap.NewNop())

	cases := []struct {
		tokenRole domain.Role
		required  domain.Role
		want      int
	}{
		{domain.RoleAdmin, domain.RoleAdmin, fiber.StatusOK},
		{domain.RoleDonor, domain.RoleAdmin, fiber.StatusForbidden},
		{domain.RoleHospital, domain.RoleAdmin, fiber.StatusForbidden},
		{domain.RoleHospital, domain.RoleHospital, fiber.StatusOK},
		{domain.RoleAdmin, domain.RoleDonor, fiber.StatusForbidden},
		{domain.RoleDonor, domain.RoleDonor, fiber.StatusOK},
	}

	for _, tc := range cases {
		app := guardApp(t, guard, tc.required)
		token, _, err := tm.Issue(1, tc.tokenRole)
		if err != nil {
			t.Fatal(err)
		}

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("role %q requiring %q: expected %d, got %d", tc.tokenRole, tc.required, tc.want, resp.StatusCode)
		}
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"Bearer a.b.c", "a.b.c", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"bearer abc", "", false},
		{"Bearer  abc", "", false},
		{"Bearer a b", "", false},
		{"Bearer a\tb", "", false},
	}

	for _, tc := range cases {
		token, ok := extractBearer(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Fatalf("header %q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}
