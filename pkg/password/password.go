// Package password hashing bcrypt y contraseñas temporales para el staff invitado.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hotelops-api/pkg/codes"
)

const (
	// TempLength longitud de la contraseña temporal de una invitación.
	TempLength = 12
	// MinLength mínimo de caracteres de una contraseña elegida por el usuario.
	MinLength = 8
	// MaxBytes límite de bcrypt; se cuenta en bytes, no en caracteres.
	MaxBytes = 72
)

var (
	// ErrMismatch la contraseña no corresponde al hash.
	ErrMismatch = errors.New("password: no coincide")
	// ErrTooLong la contraseña supera MaxBytes bytes.
	ErrTooLong = errors.New("password: supera 72 bytes")
)

// Hash devuelve el hash bcrypt con el costo por defecto.
func Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(h), nil
}

// Compare devuelve ErrMismatch si plain no corresponde a hash.
func Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

// Temporary contraseña aleatoria legible (mismo alfabeto que los códigos de acceso).
func Temporary() string {
	return codes.GenerateRandomCode(TempLength)
}
