package access

import "net/url"

// LoginMode formulario de login visible: credenciales de staff o código de habitación.
type LoginMode string

const (
	ModeUnset LoginMode = ""
	ModeStaff LoginMode = "staff"
	ModeGuest LoginMode = "guest"
)

// ModeParam parámetro de query que transporta el modo.
const ModeParam = "mode"

// ParseMode acepta exactamente "staff" o "guest"; cualquier otro valor es ModeUnset.
func ParseMode(raw string) LoginMode {
	switch LoginMode(raw) {
	case ModeStaff, ModeGuest:
		return LoginMode(raw)
	default:
		return ModeUnset
	}
}

// Valid informa si m es uno de los dos modos.
func (m LoginMode) Valid() bool { return m == ModeStaff || m == ModeGuest }

// LoginURL URL canónica del login para el modo.
func LoginURL(m LoginMode) string {
	q := url.Values{}
	q.Set(ModeParam, string(m))
	return LoginPath + "?" + q.Encode()
}
