// Package session mantiene el estado de autenticación de una petición y los hooks
// que adaptan el proveedor de identidad. State es el único escritor: Apply publica
// IsAuthenticated, NeedsPasswordSetup y User juntos, en un solo paso, a los observadores.
package session

import (
	"errors"
	"sync"

	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

// Snapshot vista inmutable del estado de sesión.
type Snapshot struct {
	IsAuthenticated    bool
	NeedsPasswordSetup bool
	User               *entity.User
}

// Inputs convierte el snapshot en las entradas de la tabla de navegación.
func (s Snapshot) Inputs() access.Inputs {
	return access.Inputs{
		IsAuthenticated:    s.IsAuthenticated,
		NeedsPasswordSetup: s.NeedsPasswordSetup,
		User:               s.User,
	}
}

// FromUser snapshot autenticado a partir de un perfil ya cargado.
func FromUser(u *entity.User) Snapshot {
	if u == nil {
		return Snapshot{}
	}
	return Snapshot{IsAuthenticated: true, NeedsPasswordSetup: u.NeedsPasswordSetup, User: u}
}

// Observer reacciona a cada cambio; se ejecuta sincrónicamente dentro de Apply.
type Observer func(access.Inputs) error

// Variantes de notificación.
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification aviso transitorio con título corto y descripción.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// State estado de sesión con un único punto de escritura.
type State struct {
	mu            sync.Mutex
	snap          Snapshot
	resending     bool
	observers     []Observer
	notifications []Notification
}

// NewState construye el estado inicial (no autenticado).
func NewState() *State {
	return &State{}
}

// Subscribe registra un observador. No se invoca retroactivamente.
func (s *State) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Apply reemplaza el snapshot y notifica a los observadores en orden.
// Devuelve los errores de los observadores (p. ej. navigation.ErrInconsistentSession).
func (s *State) Apply(next Snapshot) error {
	s.mu.Lock()
	s.snap = next
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	var errs []error
	in := next.Inputs()
	for _, o := range observers {
		if err := o(in); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Snapshot devuelve el estado actual.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Notify encola una notificación para la respuesta.
func (s *State) Notify(n Notification) {
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

// Notifications devuelve una copia de las notificaciones encoladas.
func (s *State) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.notifications...)
}

// Resending informa si hay un reenvío de verificación en curso.
func (s *State) Resending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resending
}

func (s *State) setResending(v bool) {
	s.mu.Lock()
	s.resending = v
	s.mu.Unlock()
}
