package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/session"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) ResendVerification(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockProvider) IdentityByID(ctx context.Context, userID string) (*entity.Identity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}

func (m *mockProvider) SendPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func TestResendVerificationEmail_Exito(t *testing.T) {
	p := &mockProvider{}
	p.On("ResendVerification", mock.Anything, "ana@hotel.co").Return(nil)
	st := session.NewState()
	h := session.NewHooks(p, st, nil)

	ok := h.ResendVerificationEmail(context.Background(), " ana@hotel.co ")
	assert.True(t, ok)
	assert.False(t, st.Resending())
	require.Len(t, st.Notifications(), 1)
	assert.Equal(t, session.VariantDefault, st.Notifications()[0].Variant)
	p.AssertExpectations(t)
}

func TestResendVerificationEmail_ErrorNotificaYLimpiaFlag(t *testing.T) {
	p := &mockProvider{}
	p.On("ResendVerification", mock.Anything, "ana@hotel.co").Return(errors.New("smtp caído"))
	st := session.NewState()
	before := st.Snapshot()
	h := session.NewHooks(p, st, nil)

	ok := h.ResendVerificationEmail(context.Background(), "ana@hotel.co")
	assert.False(t, ok)
	assert.False(t, st.Resending())
	assert.Equal(t, before, st.Snapshot())
	require.Len(t, st.Notifications(), 1)
	assert.Equal(t, session.VariantDestructive, st.Notifications()[0].Variant)
}

func TestResendVerificationEmail_EmailVacio(t *testing.T) {
	p := &mockProvider{}
	st := session.NewState()
	h := session.NewHooks(p, st, nil)

	assert.False(t, h.ResendVerificationEmail(context.Background(), "  "))
	p.AssertNotCalled(t, "ResendVerification", mock.Anything, mock.Anything)
	assert.False(t, st.Resending())
}

func TestResendVerificationEmail_CanceladoNoNotifica(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &mockProvider{}
	p.On("ResendVerification", mock.Anything, "ana@hotel.co").
		Run(func(mock.Arguments) { cancel() }).
		Return(context.Canceled)
	st := session.NewState()
	h := session.NewHooks(p, st, nil)

	assert.False(t, h.ResendVerificationEmail(ctx, "ana@hotel.co"))
	assert.Empty(t, st.Notifications())
	assert.False(t, st.Resending())
}

func TestCheckEmailVerification(t *testing.T) {
	confirmed := time.Now()
	p := &mockProvider{}
	p.On("IdentityByID", mock.Anything, "u1").Return(&entity.Identity{ID: "u1", EmailConfirmedAt: &confirmed}, nil)
	p.On("IdentityByID", mock.Anything, "u2").Return(&entity.Identity{ID: "u2"}, nil)
	p.On("IdentityByID", mock.Anything, "u3").Return(nil, errors.New("timeout"))

	cases := []struct {
		name string
		user *entity.User
		want bool
	}{
		{"sin usuario", nil, false},
		{"huésped", &entity.User{ID: "g", Grant: entity.GuestGrant{RoomNumber: "1"}}, false},
		{"verificado", &entity.User{ID: "u1", Grant: entity.AdminGrant{}}, true},
		{"no verificado", &entity.User{ID: "u2", Grant: entity.StaffGrant{}}, false},
		{"error del proveedor", &entity.User{ID: "u3", Grant: entity.StaffGrant{}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := session.NewState()
			require.NoError(t, st.Apply(session.FromUser(tc.user)))
			h := session.NewHooks(p, st, nil)
			assert.Equal(t, tc.want, h.CheckEmailVerification(context.Background()))
		})
	}
}

func TestResetPassword_Callbacks(t *testing.T) {
	p := &mockProvider{}
	p.On("SendPasswordReset", mock.Anything, "ok@hotel.co").Return(nil)
	p.On("SendPasswordReset", mock.Anything, "nadie@hotel.co").Return(domain.ErrUserNotFound)
	p.On("SendPasswordReset", mock.Anything, "lento@hotel.co").Return(context.DeadlineExceeded)
	h := session.NewHooks(p, session.NewState(), nil)

	var succeeded bool
	h.ResetPassword(context.Background(), &entity.User{ID: "1", Email: "ok@hotel.co"},
		func() { succeeded = true },
		func(*session.HookError) { t.Fatal("no se esperaba error") })
	assert.True(t, succeeded)

	var got *session.HookError
	onErr := func(e *session.HookError) { got = e }
	h.ResetPassword(context.Background(), &entity.User{ID: "2", Email: "nadie@hotel.co"}, func() {}, onErr)
	require.NotNil(t, got)
	assert.Equal(t, session.HookCodeNotFound, got.Code)
	assert.ErrorIs(t, got, domain.ErrUserNotFound)

	h.ResetPassword(context.Background(), &entity.User{ID: "3", Email: "lento@hotel.co"}, func() {}, onErr)
	assert.Equal(t, session.HookCodeTimeout, got.Code)

	h.ResetPassword(context.Background(), &entity.User{ID: "4"}, func() {}, onErr)
	assert.Equal(t, session.HookCodeValidation, got.Code)
}

func TestResetPassword_CanceladoSinCallbacks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &mockProvider{}
	p.On("SendPasswordReset", mock.Anything, "ok@hotel.co").Return(context.Canceled)
	h := session.NewHooks(p, session.NewState(), nil)

	called := false
	h.ResetPassword(ctx, &entity.User{ID: "1", Email: "ok@hotel.co"},
		func() { called = true },
		func(*session.HookError) { called = true })
	assert.False(t, called)
}
