package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvergaras/fieldops-api/internal/domain/entity"
	httpiface "github.com/dvergaras/fieldops-api/internal/interfaces/http"
	"github.com/dvergaras/fieldops-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

// buildTestApp app mínima con el middleware de auth y una ruta protegida que
// además exige rol de escritura de almacén.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", httpiface.AuthMiddleware(testSecret))
	protected.Get("/perfil", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": httpiface.GetUserID(c),
			"role":    httpiface.GetRole(c),
		})
	})
	protected.Post("/items",
		httpiface.RequireRole(entity.RoleAdmin, entity.RoleAlmacenista),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) },
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", role, "fieldops-test", 60)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareSinHeader(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "/perfil", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
		"sin Authorization header debe responder 401")
}

func TestAuthMiddlewareFormatoInvalido(t *testing.T) {
	app := buildTestApp()

	resp := doRequest(t, app, http.MethodGet, "/perfil", "Token abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "esquema distinto de Bearer")

	resp = doRequest(t, app, http.MethodGet, "/perfil", "Bearer ")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "token vacío")

	resp = doRequest(t, app, http.MethodGet, "/perfil", "Bearer no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "token malformado")
}

func TestAuthMiddlewareFirmaIncorrecta(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate("otro-secreto", "user-1", entity.RoleAdmin, "fieldops-test", 60)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/perfil", "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
		"un token firmado con otro secreto no debe pasar")
}

func TestAuthMiddlewareTokenExpirado(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "user-1", entity.RoleAdmin, "fieldops-test", -5)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/perfil", "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareTokenValido(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, http.MethodGet, "/perfil", "Bearer "+tokenForRole(t, entity.RoleTecnico))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRolePorRol(t *testing.T) {
	app := buildTestApp()

	cases := []struct {
		role string
		want int
	}{
		{entity.RoleAdmin, fiber.StatusCreated},
		{entity.RoleAlmacenista, fiber.StatusCreated},
		{entity.RoleTecnico, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, "/items", "Bearer "+tokenForRole(t, tc.role))
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
