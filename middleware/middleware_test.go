package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"vms-console/lib/session"
	authutils "vms-console/lib/utils/auth-utils"
	"vms-console/models"
)

const secret = "middleware-secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", AuthorizationWithSecret(secret), SessionRequired(), AdminRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetSession(ctx).Username)
	})
	app.Get("/portal", AuthorizationWithSecret(secret), SessionRequired(), VendorRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetSessionID(ctx))
	})
	return app
}

func saveSession(t *testing.T, role models.UserRole) *session.Session {
	sess := session.New(role, "admin", "remote-token", time.Hour)
	require.NoError(t, session.Instance.Save(context.Background(), sess))
	return sess
}

func signed(t *testing.T, sess *session.Session, key string) string {
	token, err := authutils.GetToken(sess, key, time.Hour)
	require.NoError(t, err)
	return token
}

func send(t *testing.T, app *fiber.App, req *http.Request) int {
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAuthorization(t *testing.T) {
	session.Instance = session.NewMemoryStore()
	app := newApp()

	t.Run("bearer header", func(t *testing.T) {
		token := signed(t, saveSession(t, models.AdminRole), secret)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		require.Equal(t, http.StatusOK, send(t, app, req))
	})

	t.Run("query token", func(t *testing.T) {
		token := signed(t, saveSession(t, models.AdminRole), secret)
		req := httptest.NewRequest(http.MethodGet, "/admin?token="+token, nil)
		require.Equal(t, http.StatusOK, send(t, app, req))
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		require.Equal(t, http.StatusUnauthorized, send(t, app, req))
	})

	t.Run("header without scheme", func(t *testing.T) {
		token := signed(t, saveSession(t, models.AdminRole), secret)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, token)
		require.Equal(t, http.StatusUnauthorized, send(t, app, req))
	})

	t.Run("foreign signature", func(t *testing.T) {
		token := signed(t, saveSession(t, models.AdminRole), "other-secret")
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, send(t, app, req))
	})

	t.Run("deleted session", func(t *testing.T) {
		sess := saveSession(t, models.AdminRole)
		token := signed(t, sess, secret)
		require.NoError(t, session.Instance.Delete(context.Background(), sess.ID))
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, send(t, app, req))
	})

	t.Run("role mismatch", func(t *testing.T) {
		token := signed(t, saveSession(t, models.VendorRole), secret)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		require.Equal(t, http.StatusForbidden, send(t, app, req))

		req = httptest.NewRequest(http.MethodGet, "/portal", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		require.Equal(t, http.StatusOK, send(t, app, req))
	})
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/", WithBodyLimit(10), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	t.Run("small body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		require.Equal(t, http.StatusOK, send(t, app, req))
	})

	t.Run("large body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 20)))
		require.Equal(t, http.StatusRequestEntityTooLarge, send(t, app, req))
	})
}
