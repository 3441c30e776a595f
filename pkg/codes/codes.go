// Package codes genera identificadores legibles para hoteles y habitaciones.
// El alfabeto excluye caracteres confundibles (0/O, 1/I). Ninguna función verifica
// unicidad: el llamador reintenta ante domain.ErrDuplicate hasta MaxAttempts veces.
package codes

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Alphabet caracteres permitidos en la parte aleatoria. Son 32, así que b%32 es uniforme.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	// DefaultLength longitud de GenerateRandomCode cuando se pide n <= 0.
	DefaultLength = 6
	// MaxAttempts reintentos sugeridos ante colisión en persistencia.
	MaxAttempts = 5

	hotelPrefixLen = 3
	hotelSuffixLen = 3
	roomPrefixLen  = 2
	roomNumberLen  = 3
	roomSuffixLen  = 2
	padLetter      = 'X'
)

// GenerateRandomCode devuelve n caracteres uniformes de Alphabet (n <= 0 usa DefaultLength).
func GenerateRandomCode(n int) string {
	if n <= 0 {
		n = DefaultLength
	}
	buf := make([]byte, n)
	// crypto/rand.Read no devuelve error desde Go 1.24.
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(buf)
}

// GenerateHotelCode primeras 3 letras del nombre (sin diacríticos ni caracteres no
// alfabéticos, en mayúsculas, completadas con 'X' si faltan) + 3 caracteres aleatorios.
// "Sea Breeze Inn" → "SEA" + XXX.
func GenerateHotelCode(hotelName string) string {
	prefix := lettersOnly(hotelName)
	return fit(prefix, hotelPrefixLen, padLetter, false) + GenerateRandomCode(hotelSuffixLen)
}

// GenerateRoomCode 2 primeros caracteres del código de hotel + número de habitación
// (solo alfanuméricos, truncado o rellenado con ceros a la izquierda hasta 3) + 2 aleatorios.
// ("SEA123", "42") → "SE" + "042" + XX.
func GenerateRoomCode(hotelCode, roomNumber string) string {
	prefix := fit(alnumOnly(hotelCode), roomPrefixLen, padLetter, false)
	number := fit(alnumOnly(roomNumber), roomNumberLen, '0', true)
	return prefix + number + GenerateRandomCode(roomSuffixLen)
}

// Normalize limpia un código ingresado por el usuario (espacios, guiones, minúsculas).
func Normalize(code string) string {
	return alnumOnly(code)
}

// transform.Chain guarda estado: se construye uno por llamada.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func lettersOnly(s string) string {
	folded, _, err := transform.String(foldDiacritics(), s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func alnumOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fit trunca s a n caracteres o lo completa con pad (a la izquierda si left).
func fit(s string, n int, pad byte, left bool) string {
	if len(s) >= n {
		return s[:n]
	}
	padding := strings.Repeat(string(pad), n-len(s))
	if left {
		return padding + s
	}
	return s + padding
}
