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

	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	apphttp "github.com/jhoicas/hotelops-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildGuardedApp aplicación mínima con AuthMiddleware + la guarda indicada y un handler
// dummy que devuelve 200 si pasa los middlewares.
func buildGuardedApp(s *testServer, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(s.auth),
		guard,
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":       true,
				"role":     apphttp.GetRole(c),
				"hotel_id": apphttp.GetHotelID(c),
			})
		},
	)
	return app
}

func get(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const plainStaffID = "00000000-0000-0000-0000-000000000002"

func seedRoles(t *testing.T, s *testServer) {
	t.Helper()
	s.seedHotel(t, "h1", "SEA7K2")
	s.seedUser(t, "a1", "admin@hotel.co", entity.AdminGrant{}, "h1", false)
	s.seedUser(t, "s1", "rooms@hotel.co", entity.StaffGrant{CanManageRooms: true}, "h1", false)
	s.seedUser(t, plainStaffID, "plain@hotel.co", entity.StaffGrant{}, "h1", false)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	s := newTestServer(t, "")
	seedRoles(t, s)
	app := buildGuardedApp(s, apphttp.RequireRole(entity.RoleAdmin))

	resp := get(t, app, "Bearer "+s.token(t, "admin@hotel.co"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, "h1", body["hotel_id"])
}

func TestRequireRole_StaffBloqueadoEnRutaAdmin(t *testing.T) {
	s := newTestServer(t, "")
	seedRoles(t, s)
	app := buildGuardedApp(s, apphttp.RequireRole(entity.RoleAdmin))

	resp := get(t, app, "Bearer "+s.token(t, "plain@hotel.co"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_MultiRol(t *testing.T) {
	s := newTestServer(t, "")
	seedRoles(t, s)
	app := buildGuardedApp(s, apphttp.RequireRole(entity.RoleAdmin, entity.RoleStaff))

	resp := get(t, app, "Bearer "+s.token(t, "plain@hotel.co"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_SegunCapacidades(t *testing.T) {
	s := newTestServer(t, "")
	seedRoles(t, s)
	app := buildGuardedApp(s, apphttp.RequirePermission(access.CanManageRooms))

	cases := []struct {
		email string
		want  int
	}{
		{"admin@hotel.co", http.StatusOK},
		{"rooms@hotel.co", http.StatusOK},
		{"plain@hotel.co", http.StatusForbidden},
	}
	for _, tc := range cases {
		resp := get(t, app, "Bearer "+s.token(t, tc.email))
		resp.Body.Close()
		assert.Equal(t, tc.want, resp.StatusCode, tc.email)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	s := newTestServer(t, "")
	app := buildGuardedApp(s, apphttp.RequireRole(entity.RoleAdmin))

	resp := get(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	s := newTestServer(t, "")
	app := buildGuardedApp(s, apphttp.RequireRole(entity.RoleAdmin))

	for _, h := range []string{"Token abc", "Bearer ", "Bearer token.invalido.aqui"} {
		resp := get(t, app, h)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, h)
	}
}

func TestAuthMiddleware_TokenRevocado_Retorna401(t *testing.T) {
	s := newTestServer(t, "")
	seedRoles(t, s)
	app := buildGuardedApp(s, apphttp.RequireRole(entity.RoleAdmin))
	tok := s.token(t, "admin@hotel.co")

	status, _ := s.do(t, http.MethodPost, "/api/auth/logout", tok, nil)
	require.Equal(t, http.StatusNoContent, status)

	resp := get(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// El perfil se recarga en cada petición: un cambio de capacidades aplica sin nuevo login.
func TestAuthMiddleware_PerfilActualizado(t *testing.T) {
	s := newTestServer(t, "")
	seedRoles(t, s)
	app := buildGuardedApp(s, apphttp.RequirePermission(access.CanManageStaff))
	tok := s.token(t, "plain@hotel.co")

	resp := get(t, app, "Bearer "+tok)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminTok := s.token(t, "admin@hotel.co")
	status, body := s.do(t, http.MethodPatch, "/api/staff/"+plainStaffID+"/permissions", adminTok,
		map[string]bool{"can_manage_rooms": false, "can_manage_staff": true})
	require.Equal(t, http.StatusOK, status, string(body))

	resp = get(t, app, "Bearer "+tok)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOptionalAuth_TokenInvalidoSigueAnonimo(t *testing.T) {
	s := newTestServer(t, "")
	app := fiber.New()
	app.Get("/open", apphttp.OptionalAuth(s.auth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": apphttp.GetUser(c) != nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer basura")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body["authenticated"])
}
