package navigation_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/navigation"
	"github.com/jhoicas/hotelops-api/internal/application/session"
	"github.com/jhoicas/hotelops-api/internal/domain/access"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestController_NoAutenticadoNoNavega(t *testing.T) {
	rec := &navigation.Recorder{}
	c := navigation.NewController(rec, nil)

	d, err := c.OnChange(access.Inputs{})
	require.NoError(t, err)
	assert.Equal(t, access.StateUnauthenticated, d.State)
	assert.Nil(t, rec.Last())
}

func TestController_AdminSinHotelVaASetup(t *testing.T) {
	rec := &navigation.Recorder{}
	c := navigation.NewController(rec, nil)

	_, err := c.OnChange(access.Inputs{IsAuthenticated: true, User: &entity.User{ID: "u1", Grant: entity.AdminGrant{}}})
	require.NoError(t, err)
	require.NotNil(t, rec.Last())
	assert.Equal(t, access.SetupPath, rec.Last().Path)
	assert.False(t, rec.Last().Replace)
}

func TestController_StaffVaAlDashboard(t *testing.T) {
	rec := &navigation.Recorder{}
	c := navigation.NewController(rec, nil)

	_, err := c.OnChange(access.Inputs{IsAuthenticated: true, User: &entity.User{ID: "u2", HotelID: strPtr("h1"), Grant: entity.StaffGrant{}}})
	require.NoError(t, err)
	assert.Equal(t, access.DashboardPath, rec.Last().Path)
}

func TestController_PasswordSetupSeQuedaEnLogin(t *testing.T) {
	rec := &navigation.Recorder{}
	c := navigation.NewController(rec, nil)

	d, err := c.OnChange(access.Inputs{IsAuthenticated: true, NeedsPasswordSetup: true, User: &entity.User{ID: "u3", Grant: entity.StaffGrant{}}})
	require.NoError(t, err)
	assert.Equal(t, access.StatePendingPasswordSetup, d.State)
	assert.Empty(t, rec.Routes())
}

func TestController_AutenticadoSinUsuarioEsError(t *testing.T) {
	rec := &navigation.Recorder{}
	c := navigation.NewController(rec, nil)

	d, err := c.OnChange(access.Inputs{IsAuthenticated: true})
	assert.ErrorIs(t, err, navigation.ErrInconsistentSession)
	assert.Equal(t, access.StateContradictory, d.State)
	assert.Empty(t, rec.Routes())
}

func TestController_HuespedConHabitacionEscapada(t *testing.T) {
	rec := &navigation.Recorder{}
	c := navigation.NewController(rec, nil)

	c.NavigateAfterGuestLogin("ABCXYZ", "suite 1")
	require.NotNil(t, rec.Last())
	assert.Equal(t, "/guest/suite%201", rec.Last().Path)
	assert.Equal(t, access.StateAuthenticatedGuest, c.Last().State)
}

func TestController_NavigateAfterStaffLogin(t *testing.T) {
	rec := &navigation.Recorder{}
	c := navigation.NewController(rec, nil)

	require.NoError(t, c.NavigateAfterStaffLogin(&entity.User{ID: "a", HotelID: strPtr("h1"), Grant: entity.AdminGrant{}}))
	assert.Equal(t, access.DashboardPath, rec.Last().Path)

	assert.ErrorIs(t, c.NavigateAfterStaffLogin(nil), navigation.ErrInconsistentSession)
	assert.Len(t, rec.Routes(), 1)
}

// El controlador suscrito al estado de sesión navega en cada Apply.
func TestController_ObservaElEstadoDeSesion(t *testing.T) {
	rec := &navigation.Recorder{}
	c := navigation.NewController(rec, nil)
	st := session.NewState()
	st.Subscribe(c.Observe)

	require.NoError(t, st.Apply(session.FromUser(&entity.User{ID: "g", Grant: entity.GuestGrant{RoomNumber: "204"}})))
	assert.Equal(t, "/guest/204", rec.Last().Path)

	err := st.Apply(session.Snapshot{IsAuthenticated: true})
	assert.ErrorIs(t, err, navigation.ErrInconsistentSession)
	assert.Len(t, rec.Routes(), 1)
}

func TestModeSelector_SinModoReemplazaPorStaff(t *testing.T) {
	rec := &navigation.Recorder{}
	s := navigation.NewModeSelector(rec)

	mode := s.Reconcile(url.Values{})
	assert.Equal(t, access.ModeStaff, mode)
	require.Len(t, rec.Routes(), 1)
	assert.Equal(t, access.Route{Path: "/login?mode=staff", Replace: true}, rec.Routes()[0])
}

func TestModeSelector_ModoValidoNoNavega(t *testing.T) {
	rec := &navigation.Recorder{}
	s := navigation.NewModeSelector(rec)

	mode := s.Reconcile(url.Values{"mode": {"guest"}})
	assert.Equal(t, access.ModeGuest, mode)
	assert.Empty(t, rec.Routes())
}

func TestModeSelector_ModoInvalidoConservaOtrosParametros(t *testing.T) {
	rec := &navigation.Recorder{}
	s := navigation.NewModeSelector(rec)

	s.Reconcile(url.Values{"mode": {"admin"}, "hotel": {"ABC123"}})
	require.NotNil(t, rec.Last())
	assert.Equal(t, "/login?hotel=ABC123&mode=staff", rec.Last().Path)
}

func TestModeSelector_SwitchMode(t *testing.T) {
	rec := &navigation.Recorder{}
	s := navigation.NewModeSelector(rec)
	s.Reconcile(url.Values{"mode": {"staff"}})

	s.SwitchMode(nil)
	bad := access.LoginMode("root")
	s.SwitchMode(&bad)
	assert.Empty(t, rec.Routes())

	guest, staff := access.ModeGuest, access.ModeStaff
	s.SwitchMode(&guest)
	s.SwitchMode(&staff)
	assert.Equal(t, access.ModeStaff, s.Mode())
	assert.Equal(t, "/login?mode=staff", rec.Last().Path)
	assert.True(t, rec.Last().Replace)
}
