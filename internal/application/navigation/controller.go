package navigation

import (
	"errors"

	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// ErrInconsistentSession autenticado sin perfil. Es un error de programación del dueño
// de la sesión; el controlador no navega.
var ErrInconsistentSession = errors.New("navigation: sesión autenticada sin usuario")

// Controller reacciona a cambios de sesión y navega según la tabla de access.Decide.
type Controller struct {
	nav  Navigator
	log  *logger.Logger
	last access.Decision
}

// NewController construye el controlador sobre un Navigator.
func NewController(nav Navigator, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{nav: nav, log: log.Component("navigation")}
}

// OnChange evalúa las entradas y, si corresponde, hace push de la ruta destino.
func (c *Controller) OnChange(in access.Inputs) (access.Decision, error) {
	d := access.Decide(in)
	c.last = d
	if d.State == access.StateContradictory {
		c.log.Error().Msg("sesión inconsistente: autenticado sin perfil, no se redirige")
		return d, ErrInconsistentSession
	}
	c.follow(d)
	return d, nil
}

// Observe adapta OnChange a session.Observer.
func (c *Controller) Observe(in access.Inputs) error {
	_, err := c.OnChange(in)
	return err
}

// Last última decisión tomada.
func (c *Controller) Last() access.Decision { return c.last }

// NavigateAfterStaffLogin aplica las reglas de admin sin hotel / dashboard tras un
// login con credenciales exitoso.
func (c *Controller) NavigateAfterStaffLogin(u *entity.User) error {
	d := access.DecideAfterStaffLogin(u)
	c.last = d
	if d.State == access.StateContradictory {
		c.log.Error().Msg("login de staff sin perfil, no se redirige")
		return ErrInconsistentSession
	}
	c.follow(d)
	return nil
}

// NavigateAfterGuestLogin lleva al huésped a su habitación. hotelCode no forma parte
// de la ruta; queda en el log para desambiguar entre hoteles.
func (c *Controller) NavigateAfterGuestLogin(hotelCode, room string) {
	d := access.Decision{
		State: access.StateAuthenticatedGuest,
		Route: &access.Route{Path: access.GuestPath(room)},
	}
	c.last = d
	c.log.Debug().Str("hotel_code", hotelCode).Str("room", room).Msg("login de huésped")
	c.follow(d)
}

func (c *Controller) follow(d access.Decision) {
	if !d.Redirects() {
		return
	}
	c.log.Debug().Str("state", string(d.State)).Str("path", d.Route.Path).Msg("navegación")
	if d.Route.Replace {
		c.nav.Replace(d.Route.Path)
		return
	}
	c.nav.Push(d.Route.Path)
}
