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

	"github.com/jhoicas/cafe-pos-api/internal/domain/authz"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/cafe-pos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/cafe-pos-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "cafe-pos-test"
	testExpMin    = 60
)

// buildTestApp app mínima: AuthMiddleware + Authorize(resource, action) + handler dummy.
func buildTestApp(resource, action string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.Authorize(resource, action),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Identity{UserID: testUserID, Username: "ana", Role: role}, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthorize_AdminListaOrdenes(t *testing.T) {
	app := buildTestApp(authz.ResourceOrders, authz.ActionList)
	resp := doRequest(t, app, tokenFor(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthorize_CajeroHaceCheckout(t *testing.T) {
	app := buildTestApp(authz.ResourceOrders, authz.ActionCreate)
	resp := doRequest(t, app, tokenFor(t, entity.RoleCashier))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthorize_CajeroNoAnula(t *testing.T) {
	app := buildTestApp(authz.ResourceOrders, authz.ActionVoid)
	resp := doRequest(t, app, tokenFor(t, entity.RoleCashier))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"code":"FORBIDDEN","message":"Forbidden"}`, string(body))
}

func TestAuthorize_RolDesconocido(t *testing.T) {
	app := buildTestApp(authz.ResourceProducts, authz.ActionList)
	resp := doRequest(t, app, tokenFor(t, "barista"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(authz.ResourceProducts, authz.ActionList)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_EsquemaIncorrecto(t *testing.T) {
	app := buildTestApp(authz.ResourceProducts, authz.ActionList)
	resp := doRequest(t, app, "Basic YWRtaW46YWRtaW4=")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildTestApp(authz.ResourceProducts, authz.ActionList)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_OtroSecret(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", testIssuer, pkgjwt.Identity{UserID: testUserID, Role: entity.RoleAdmin}, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(authz.ResourceProducts, authz.ActionList)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":       apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"role":     apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, entity.RoleCashier))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["id"])
	assert.Equal(t, "ana", body["username"])
	assert.Equal(t, "cashier", body["role"])
}
