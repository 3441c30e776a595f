package navigation

import (
	"net/url"

	"github.com/jhoicas/hotelops-api/internal/domain/access"
)

// ModeSelector mantiene el modo de login con la URL como única fuente de verdad.
type ModeSelector struct {
	nav   Navigator
	query url.Values
	mode  access.LoginMode
}

// NewModeSelector construye el selector sobre un Navigator.
func NewModeSelector(nav Navigator) *ModeSelector {
	return &ModeSelector{nav: nav, query: url.Values{}}
}

// Reconcile lee el modo de la query. Si no es válido reemplaza la URL por la canónica
// con mode=staff (una sola vez: con un modo válido no navega) y devuelve el modo vigente.
func (s *ModeSelector) Reconcile(query url.Values) access.LoginMode {
	s.query = cloneValues(query)
	mode := access.ParseMode(query.Get(access.ModeParam))
	if !mode.Valid() {
		mode = access.ModeStaff
		s.rewrite(mode)
	}
	s.mode = mode
	return mode
}

// SwitchMode cambia de modo reemplazando la URL. nil o un modo inválido no hace nada.
// Dos llamadas seguidas dejan el último modo.
func (s *ModeSelector) SwitchMode(next *access.LoginMode) {
	if next == nil || !next.Valid() {
		return
	}
	s.rewrite(*next)
	s.mode = *next
}

// Mode modo vigente (ModeUnset antes del primer Reconcile).
func (s *ModeSelector) Mode() access.LoginMode { return s.mode }

func (s *ModeSelector) rewrite(mode access.LoginMode) {
	s.query.Set(access.ModeParam, string(mode))
	s.nav.Replace(access.LoginPath + "?" + s.query.Encode())
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
