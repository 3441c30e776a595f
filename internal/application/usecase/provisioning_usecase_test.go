package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/testutil"
)

func seedHotel(t *testing.T, store *testutil.Store, id, code string) {
	t.Helper()
	require.NoError(t, store.Hotels().Create(context.Background(), &entity.Hotel{
		ID: id, Name: "Sea Breeze", Code: code, Status: entity.HotelStatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func TestProvision_RolPorDefectoAdmin(t *testing.T) {
	store := testutil.NewStore()
	uc := NewProvisioningUseCase(store.Users(), store.Hotels(), nil)

	u, err := uc.Provision(context.Background(), &dto.ProvisionRecord{ID: "u1", Email: "Ana@Hotel.co"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role())
	assert.Equal(t, "ana@hotel.co", u.Email)
	assert.Equal(t, "Ana@Hotel.co", u.Name)
	assert.False(t, u.NeedsPasswordSetup)
	assert.False(t, u.HasHotel())
}

func TestProvision_HuespedRechazado(t *testing.T) {
	store := testutil.NewStore()
	uc := NewProvisioningUseCase(store.Users(), store.Hotels(), nil)

	_, err := uc.Provision(context.Background(), &dto.ProvisionRecord{
		ID: "u1", Email: "g@hotel.co", RawUserMetaData: dto.ProvisionMetadata{Role: "guest"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = uc.Provision(context.Background(), &dto.ProvisionRecord{
		ID: "u1", Email: "g@hotel.co", RawUserMetaData: dto.ProvisionMetadata{Role: "superuser"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestProvision_StaffRequiereHotelYConfigurarContrasena(t *testing.T) {
	store := testutil.NewStore()
	seedHotel(t, store, "h1", "SEAAAA")
	uc := NewProvisioningUseCase(store.Users(), store.Hotels(), nil)
	ctx := context.Background()

	_, err := uc.Provision(ctx, &dto.ProvisionRecord{ID: "s0", Email: "s0@hotel.co", RawUserMetaData: dto.ProvisionMetadata{Role: "staff"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Provision(ctx, &dto.ProvisionRecord{ID: "s0", Email: "s0@hotel.co", RawUserMetaData: dto.ProvisionMetadata{Role: "staff", HotelID: "nope"}})
	assert.ErrorIs(t, err, domain.ErrHotelNotFound)

	u, err := uc.Provision(ctx, &dto.ProvisionRecord{
		ID: "s1", Email: "s1@hotel.co",
		RawUserMetaData: dto.ProvisionMetadata{Role: "staff", HotelID: "h1", CanManageRooms: true},
	})
	require.NoError(t, err)
	assert.True(t, u.NeedsPasswordSetup)
	assert.Equal(t, entity.StaffGrant{CanManageRooms: true}, u.Grant)
	assert.Equal(t, "h1", u.HotelIDValue())
}

func TestProvision_Idempotente(t *testing.T) {
	store := testutil.NewStore()
	uc := NewProvisioningUseCase(store.Users(), store.Hotels(), nil)
	confirmed := "2025-01-01T00:00:00Z"
	rec := &dto.ProvisionRecord{ID: "u1", Email: "ana@hotel.co", EmailConfirmedAt: &confirmed}

	first, err := uc.Provision(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, first.EmailVerified)

	second, err := uc.Provision(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestProvision_RegistroIncompleto(t *testing.T) {
	store := testutil.NewStore()
	uc := NewProvisioningUseCase(store.Users(), store.Hotels(), nil)

	_, err := uc.Provision(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Provision(context.Background(), &dto.ProvisionRecord{ID: "u1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
