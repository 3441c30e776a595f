package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalClaims = "claims"
	LocalUser   = "user"
)

var errRevoked = errors.New("token revocado")

// sessionResolver contrato mínimo que necesita el middleware. Lo implementa *auth.AuthUseCase.
type sessionResolver interface {
	ParseSession(token string) (*jwt.Claims, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
	CurrentUser(ctx context.Context, claims *jwt.Claims) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token, descarta tokens revocados y carga el perfil en
// c.Locals (LocalClaims, LocalUser).
func AuthMiddleware(sessions sessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if code != "" {
			return fail(c, fiber.StatusUnauthorized, code, "Sesión requerida", msg)
		}
		claims, user, err := resolve(c, sessions, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Sesión expirada", "token inválido o expirado")
		}
		c.Locals(LocalClaims, claims)
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware pero un request anónimo o con token inválido sigue
// sin sesión (endpoints públicos que cambian según el usuario, p. ej. navegación).
func OptionalAuth(sessions sessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, _ := bearerToken(c)
		if code == "" {
			claims, user, err := resolve(c, sessions, tokenString)
			if err == nil {
				c.Locals(LocalClaims, claims)
				c.Locals(LocalUser, user)
			}
		}
		return c.Next()
	}
}

// RequireRole verifica que el usuario de la sesión tenga alguno de los roles indicados.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := GetUser(c)
		if u == nil {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Sesión requerida", "inicie sesión")
		}
		if u.Role() == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "Sesión inválida", "el usuario no tiene rol")
		}
		if !access.HasAnyRole(u, roles...) {
			return fail(c, fiber.StatusForbidden, "FORBIDDEN", "Acceso denegado", "su rol no permite esta operación")
		}
		return c.Next()
	}
}

// RequirePermission aplica un predicado de access (CanManageRooms, CanManageStaff, ...).
func RequirePermission(pred access.Predicate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := GetUser(c)
		if u == nil {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Sesión requerida", "inicie sesión")
		}
		if !pred(u) {
			return fail(c, fiber.StatusForbidden, "FORBIDDEN", "Acceso denegado", "no tiene permiso para esta operación")
		}
		return c.Next()
	}
}

// RequireHotel exige que el usuario ya tenga hotel (el admin recién registrado no lo tiene).
func RequireHotel() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetUser(c).HasHotel() {
			return fail(c, fiber.StatusConflict, "HOTEL_REQUIRED", "Configure su hotel", "complete el asistente de configuración del hotel")
		}
		return c.Next()
	}
}

// GetUser perfil de la sesión o nil.
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetClaims claims del token de la sesión o nil.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// GetRole rol de la sesión o "".
func GetRole(c *fiber.Ctx) string {
	return string(GetUser(c).Role())
}

// GetHotelID hotel de la sesión o "".
func GetHotelID(c *fiber.Ctx) string {
	return GetUser(c).HotelIDValue()
}

func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

func resolve(c *fiber.Ctx, sessions sessionResolver, token string) (*jwt.Claims, *entity.User, error) {
	claims, err := sessions.ParseSession(token)
	if err != nil {
		return nil, nil, err
	}
	ctx := c.UserContext()
	revoked, err := sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, errRevoked
	}
	user, err := sessions.CurrentUser(ctx, claims)
	if err != nil {
		return nil, nil, err
	}
	return claims, user, nil
}
