package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/navigation"
	"github.com/jhoicas/hotelops-api/internal/application/session"
	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// NavigationHandler expone la máquina de navegación del login al SPA.
type NavigationHandler struct {
	log *logger.Logger
}

// NewNavigationHandler construye el handler.
func NewNavigationHandler(log *logger.Logger) *NavigationHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &NavigationHandler{log: log}
}

// flow navegación de una petición: estado de sesión con el controlador suscrito.
type flow struct {
	rec   *navigation.Recorder
	ctrl  *navigation.Controller
	state *session.State
}

func newFlow(log *logger.Logger) *flow {
	rec := &navigation.Recorder{}
	ctrl := navigation.NewController(rec, log)
	state := session.NewState()
	state.Subscribe(ctrl.Observe)
	return &flow{rec: rec, ctrl: ctrl, state: state}
}

// redirect ruta de la última navegación ("" si no hubo).
func (f *flow) redirect() string {
	if last := f.rec.Last(); last != nil {
		return last.Path
	}
	return ""
}

func (f *flow) notifications() []dto.NotificationDTO {
	list := f.state.Notifications()
	out := make([]dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationDTO{Title: n.Title, Description: n.Description, Variant: n.Variant})
	}
	return out
}

// redirectAfterLogin publica el perfil en el estado de sesión y devuelve la ruta que
// decidió el controlador.
func redirectAfterLogin(log *logger.Logger, u *entity.User) (string, error) {
	f := newFlow(log)
	if err := f.state.Apply(session.FromUser(u)); err != nil {
		return "", err
	}
	return f.redirect(), nil
}

// Get godoc
// @Summary      Estado de navegación del login
// @Description  Normaliza el modo (mode=staff si falta o es inválido) y decide la redirección según la sesión.
// @Tags         navigation
// @Produce      json
// @Param        mode      query  string  false  "staff | guest"
// @Param        newAdmin  query  bool    false  "registro recién completado"
// @Param        verified  query  bool    false  "email recién verificado"
// @Success      200  {object}  dto.NavigationResponse
// @Router       /api/navigation [get]
func (h *NavigationHandler) Get(c *fiber.Ctx) error {
	query := requestQuery(c)
	f := newFlow(h.log)
	selector := navigation.NewModeSelector(f.rec)
	mode := selector.Reconcile(query)

	newAdmin := query.Get("newAdmin") == "true"
	verified := query.Get("verified") == "true"
	if newAdmin {
		f.state.Notify(session.Notification{
			Title:       "Cuenta creada",
			Description: "Inicie sesión para configurar su hotel.",
		})
	}
	if verified {
		f.state.Notify(session.Notification{
			Title:       "Email verificado",
			Description: "Su email fue confirmado. Ya puede iniciar sesión.",
		})
	}

	// la navegación autenticada se registra después del replace del modo y prevalece
	if err := f.state.Apply(session.FromUser(GetUser(c))); err != nil && !errors.Is(err, navigation.ErrInconsistentSession) {
		return writeError(c, h.log, err)
	}

	out := dto.NavigationResponse{
		State:         string(f.ctrl.Last().State),
		Mode:          string(mode),
		NewAdmin:      newAdmin,
		Verified:      verified,
		Notifications: f.notifications(),
	}
	if last := f.rec.Last(); last != nil {
		out.Redirect, out.Replace = last.Path, last.Replace
	}
	return c.JSON(out)
}

// SwitchMode godoc
// @Summary      Cambiar el modo de login
// @Description  Un modo inválido no cambia nada; la respuesta trae la URL canónica a reemplazar.
// @Tags         navigation
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SwitchModeRequest  true  "staff | guest"
// @Success      200   {object}  dto.NavigationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/navigation/mode [post]
func (h *NavigationHandler) SwitchMode(c *fiber.Ctx) error {
	var in dto.SwitchModeRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	rec := &navigation.Recorder{}
	selector := navigation.NewModeSelector(rec)
	selector.Reconcile(requestQuery(c))

	next := access.ParseMode(in.Mode)
	selector.SwitchMode(&next)

	out := dto.NavigationResponse{
		State: string(access.StateUnauthenticated),
		Mode:  string(selector.Mode()),
	}
	if last := rec.Last(); last != nil {
		out.Redirect, out.Replace = last.Path, last.Replace
	}
	return c.JSON(out)
}

func requestQuery(c *fiber.Ctx) url.Values {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return q
}
