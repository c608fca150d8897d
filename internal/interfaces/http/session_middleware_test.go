package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/silogtran-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/silogtran-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testSessionID = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "silogtran-test"
	testExpMin    = 60
)

// buildMiddlewareApp construye una aplicación Fiber mínima con una ruta protegida por
// SessionMiddleware y otra con OptionalSession.
func buildMiddlewareApp() *fiber.App {
	app := fiber.New()
	echo := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"session_id": apphttp.GetSessionID(c),
			"username":   apphttp.GetUsername(c),
		})
	}
	app.Get("/protected", apphttp.SessionMiddleware(testJWTSecret), echo)
	app.Get("/optional", apphttp.OptionalSession(testJWTSecret), echo)
	return app
}

func bearer(t *testing.T, sessionID, username string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, sessionID, username, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_ExtraeSesionDelToken(t *testing.T) {
	app := buildMiddlewareApp()
	resp := get(t, app, "/protected", bearer(t, testSessionID, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testSessionID, body["session_id"])
	assert.Equal(t, "admin", body["username"])
}

func TestSessionMiddleware_SinHeader_Retorna401ConRedirect(t *testing.T) {
	app := buildMiddlewareApp()
	resp := get(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MISSING_TOKEN", body["code"])
	assert.Equal(t, "login", body["redirect"])
}

func TestSessionMiddleware_FormatoInvalido(t *testing.T) {
	app := buildMiddlewareApp()
	resp := get(t, app, "/protected", "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestSessionMiddleware_TokenInvalido(t *testing.T) {
	app := buildMiddlewareApp()
	resp := get(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionMiddleware_FirmaDeOtroSecreto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testSessionID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildMiddlewareApp()
	resp := get(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testSessionID, "admin", testIssuer, -5)
	require.NoError(t, err)

	app := buildMiddlewareApp()
	resp := get(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// OptionalSession
// ──────────────────────────────────────────────────────────────────────────────

func TestOptionalSession_SinTokenSigue(t *testing.T) {
	app := buildMiddlewareApp()
	resp := get(t, app, "/optional", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["session_id"])
}

func TestOptionalSession_TokenInvalidoSeIgnora(t *testing.T) {
	app := buildMiddlewareApp()
	resp := get(t, app, "/optional", "Bearer basura")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalSession_TokenValidoCargaSesion(t *testing.T) {
	app := buildMiddlewareApp()
	resp := get(t, app, "/optional", bearer(t, testSessionID, "admin"))
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testSessionID, body["session_id"])
}
