package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Purpose distingue tokens de sesión de los enlaces enviados por email.
type Purpose string

const (
	PurposeSession           Purpose = "session"
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role, HotelID y RoomNumber permiten que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string  `json:"user_id"`
	Email      string  `json:"email,omitempty"`
	HotelID    string  `json:"hotel_id,omitempty"`
	Role       string  `json:"role"` // "admin" | "staff" | "guest"
	RoomNumber string  `json:"room_number,omitempty"`
	Purpose    Purpose `json:"purpose"`
}

// Subject datos del principal que viajan en el token.
type Subject struct {
	UserID     string
	Email      string
	HotelID    string
	Role       string
	RoomNumber string
}

// Generate firma un token HS256 con un jti aleatorio. Devuelve también los claims
// (para conocer jti y expiración sin volver a parsear).
func Generate(secret string, purpose Purpose, sub Subject, issuer string, ttl time.Duration) (string, *Claims, error) {
	if secret == "" {
		return "", nil, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:     sub.UserID,
		Email:      sub.Email,
		HotelID:    sub.HotelID,
		Role:       sub.Role,
		RoomNumber: sub.RoomNumber,
		Purpose:    purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse valida firma, expiración y propósito del token.
func Parse(secret, tokenString string, purpose Purpose) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("jwt: propósito %q, se esperaba %q", claims.Purpose, purpose)
	}
	return claims, nil
}

// Remaining tiempo de vida restante del token (0 si ya expiró).
func (c *Claims) Remaining() time.Duration {
	if c == nil || c.ExpiresAt == nil {
		return 0
	}
	d := time.Until(c.ExpiresAt.Time)
	if d < 0 {
		return 0
	}
	return d
}
