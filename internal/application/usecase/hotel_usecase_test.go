package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/hotelcache"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/infrastructure/cache"
	"github.com/jhoicas/hotelops-api/internal/testutil"
	"github.com/jhoicas/hotelops-api/pkg/codes"
)

func sequence(values ...string) func(string) string {
	i := 0
	return func(string) string {
		v := values[i%len(values)]
		i++
		return v
	}
}

func newHotelFixture(t *testing.T) (*testutil.Store, *HotelUseCase, *entity.User) {
	t.Helper()
	store := testutil.NewStore()
	codeCache := hotelcache.New(cache.NewMemoryCache(), store.Hotels(), time.Hour, nil)
	uc := NewHotelUseCase(store.Hotels(), store.TxRunner(), codeCache, nil)

	admin := &entity.User{ID: "a1", Email: "admin@hotel.co", Grant: entity.AdminGrant{}}
	require.NoError(t, store.Users().Create(context.Background(), admin))
	return store, uc, admin
}

func TestHotelSetup_AsociaHotelAlAdmin(t *testing.T) {
	store, uc, admin := newHotelFixture(t)

	out, err := uc.Setup(context.Background(), admin, dto.CreateHotelRequest{Name: "Sea Breeze Inn"})
	require.NoError(t, err)
	assert.Len(t, out.Code, 6)
	assert.Equal(t, "SEA", out.Code[:3])

	saved, _ := store.Users().GetByID(context.Background(), admin.ID)
	assert.Equal(t, out.ID, saved.HotelIDValue())
}

func TestHotelSetup_ReintentaAnteColision(t *testing.T) {
	store, uc, admin := newHotelFixture(t)
	seedHotel(t, store, "otro", "SEA111")
	uc.newCode = sequence("SEA111", "SEA111", "SEA222")

	out, err := uc.Setup(context.Background(), admin, dto.CreateHotelRequest{Name: "Sea Breeze"})
	require.NoError(t, err)
	assert.Equal(t, "SEA222", out.Code)
}

func TestHotelSetup_AgotaIntentos(t *testing.T) {
	store, uc, admin := newHotelFixture(t)
	seedHotel(t, store, "otro", "SEA111")
	calls := 0
	uc.newCode = func(string) string { calls++; return "SEA111" }

	_, err := uc.Setup(context.Background(), admin, dto.CreateHotelRequest{Name: "Sea Breeze"})
	assert.ErrorIs(t, err, domain.ErrCodeExhausted)
	assert.Equal(t, codes.MaxAttempts, calls)

	saved, _ := store.Users().GetByID(context.Background(), admin.ID)
	assert.False(t, saved.HasHotel())
}

func TestHotelSetup_Reglas(t *testing.T) {
	_, uc, admin := newHotelFixture(t)
	ctx := context.Background()

	_, err := uc.Setup(ctx, &entity.User{ID: "s", Grant: entity.StaffGrant{CanManageStaff: true}}, dto.CreateHotelRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	hotelID := "h1"
	withHotel := &entity.User{ID: admin.ID, Grant: entity.AdminGrant{}, HotelID: &hotelID}
	_, err = uc.Setup(ctx, withHotel, dto.CreateHotelRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrHotelAlreadySetUp)
}

// La transacción revierte el hotel si la asignación al admin falla.
func TestHotelSetup_RollbackSiElAdminYaTieneHotel(t *testing.T) {
	store, uc, admin := newHotelFixture(t)
	seedHotel(t, store, "h0", "OLD000")
	require.NoError(t, store.Users().AssignHotel(context.Background(), admin.ID, "h0"))
	uc.newCode = func(string) string { return "NUE123" }

	_, err := uc.Setup(context.Background(), admin, dto.CreateHotelRequest{Name: "Nuevo"})
	assert.ErrorIs(t, err, domain.ErrHotelAlreadySetUp)
	h, _ := store.Hotels().GetByCode(context.Background(), "NUE123")
	assert.Nil(t, h)
}

func TestHotelUpdate_InvalidaCache(t *testing.T) {
	store, uc, admin := newHotelFixture(t)
	ctx := context.Background()
	out, err := uc.Setup(ctx, admin, dto.CreateHotelRequest{Name: "Sea Breeze"})
	require.NoError(t, err)

	code, err := uc.Code(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Code, code.Code)

	// cambio directo en la base: la caché lo oculta hasta invalidar
	require.NoError(t, store.Hotels().UpdateCode(ctx, out.ID, "CHG999"))
	code, _ = uc.Code(ctx, out.ID)
	assert.Equal(t, out.Code, code.Code)

	_, err = uc.Update(ctx, out.ID, dto.UpdateHotelRequest{Name: "Sea Breeze Resort"})
	require.NoError(t, err)
	code, _ = uc.Code(ctx, out.ID)
	assert.Equal(t, "CHG999", code.Code)
}

func TestHotelRegenerateCode(t *testing.T) {
	store, uc, admin := newHotelFixture(t)
	ctx := context.Background()
	out, err := uc.Setup(ctx, admin, dto.CreateHotelRequest{Name: "Sea Breeze"})
	require.NoError(t, err)
	seedHotel(t, store, "otro", "SEAOLD")
	uc.newCode = sequence("SEAOLD", "SEANEW")

	regen, err := uc.RegenerateCode(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "SEANEW", regen.Code)

	code, _ := uc.Code(ctx, out.ID)
	assert.Equal(t, "SEANEW", code.Code)

	_, err = uc.RegenerateCode(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrHotelNotFound)
}
