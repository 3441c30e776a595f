package access

import (
	"net/url"

	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

// Rutas de la aplicación cliente.
const (
	LoginPath     = "/login"
	SetupPath     = "/setup"
	DashboardPath = "/dashboard"
	GuestPathRoot = "/guest/"
)

// State estado derivado (nunca almacenado) de la máquina de navegación.
type State string

const (
	StateUnauthenticated             State = "unauthenticated"
	StatePendingPasswordSetup        State = "pending_password_setup"
	StateAuthenticatedGuest          State = "authenticated_guest"
	StateAuthenticatedAdminNoHotel   State = "authenticated_admin_no_hotel"
	StateAuthenticatedAdminWithHotel State = "authenticated_admin_with_hotel"
	StateAuthenticatedStaff          State = "authenticated_staff"
	// StateContradictory: autenticado sin perfil. No se redirige.
	StateContradictory State = "contradictory"
)

// Inputs entradas de la tabla de transición.
type Inputs struct {
	IsAuthenticated    bool
	NeedsPasswordSetup bool
	User               *entity.User
}

// Route destino de navegación. Replace indica reemplazo del historial en vez de push.
type Route struct {
	Path    string
	Replace bool
}

// Decision resultado de Decide. Route nil = sin redirección.
type Decision struct {
	State State
	Route *Route
}

// Redirects informa si la decisión implica navegar.
func (d Decision) Redirects() bool { return d.Route != nil }

// Decide evalúa la tabla en orden de precedencia; gana la primera regla que aplica:
//  1. no autenticado → se queda en login
//  2. requiere configurar contraseña → se queda en login (panel de contraseña)
//  3. huésped → /guest/{habitación}
//  4. admin sin hotel → /setup
//  5. resto → /dashboard
func Decide(in Inputs) Decision {
	if !in.IsAuthenticated {
		return Decision{State: StateUnauthenticated}
	}
	if in.NeedsPasswordSetup {
		return Decision{State: StatePendingPasswordSetup}
	}
	if in.User == nil {
		return Decision{State: StateContradictory}
	}
	if IsGuest(in.User) {
		return Decision{State: StateAuthenticatedGuest, Route: &Route{Path: GuestPath(in.User.RoomNumber())}}
	}
	return afterCredentials(in.User)
}

// DecideAfterStaffLogin aplica solo las reglas 4 y 5, para el llamador que ya sabe que
// un login con credenciales tuvo éxito.
func DecideAfterStaffLogin(u *entity.User) Decision {
	if u == nil {
		return Decision{State: StateContradictory}
	}
	return afterCredentials(u)
}

func afterCredentials(u *entity.User) Decision {
	if IsAdmin(u) {
		if !u.HasHotel() {
			return Decision{State: StateAuthenticatedAdminNoHotel, Route: &Route{Path: SetupPath}}
		}
		return Decision{State: StateAuthenticatedAdminWithHotel, Route: &Route{Path: DashboardPath}}
	}
	return Decision{State: StateAuthenticatedStaff, Route: &Route{Path: DashboardPath}}
}

// GuestPath ruta de la habitación del huésped.
func GuestPath(room string) string {
	return GuestPathRoot + url.PathEscape(room)
}
