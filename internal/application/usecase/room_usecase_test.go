package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/dto"
	"github.com/jhoicas/hotelops-api/internal/application/hotelcache"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/infrastructure/cache"
	"github.com/jhoicas/hotelops-api/internal/testutil"
)

func newRoomFixture(t *testing.T) (*testutil.Store, *RoomUseCase) {
	t.Helper()
	store := testutil.NewStore()
	seedHotel(t, store, "h1", "SEA7K2")
	codeCache := hotelcache.New(cache.NewMemoryCache(), store.Hotels(), time.Hour, nil)
	return store, NewRoomUseCase(store.Rooms(), codeCache, nil)
}

func TestRoomCreate_CodigoDerivadoDelHotel(t *testing.T) {
	_, uc := newRoomFixture(t)

	out, err := uc.Create(context.Background(), "h1", dto.CreateRoomRequest{Number: "42", Floor: 4, BaseRate: decimal.RequireFromString("120.555")})
	require.NoError(t, err)
	assert.Len(t, out.Code, 7)
	assert.Equal(t, "SE042", out.Code[:5])
	assert.True(t, decimal.RequireFromString("120.56").Equal(out.BaseRate))
}

func TestRoomCreate_ReintentaAnteColision(t *testing.T) {
	_, uc := newRoomFixture(t)
	ctx := context.Background()
	gen := []string{"SE101AA", "SE101AA", "SE102BB"}
	i := 0
	uc.newCode = func(string, string) string { c := gen[i]; i++; return c }

	_, err := uc.Create(ctx, "h1", dto.CreateRoomRequest{Number: "101"})
	require.NoError(t, err)
	out, err := uc.Create(ctx, "h1", dto.CreateRoomRequest{Number: "102"})
	require.NoError(t, err)
	assert.Equal(t, "SE102BB", out.Code)
}

func TestRoomCreate_NumeroRepetidoNoReintenta(t *testing.T) {
	_, uc := newRoomFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "h1", dto.CreateRoomRequest{Number: "101"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "h1", dto.CreateRoomRequest{Number: "101"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, "h1", dto.CreateRoomRequest{Number: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRoomLookup(t *testing.T) {
	_, uc := newRoomFixture(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, "h1", dto.CreateRoomRequest{Number: "7"})
	require.NoError(t, err)

	found, err := uc.Lookup(ctx, "h1", " "+created.Code[:3]+"-"+created.Code[3:]+" ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = uc.Lookup(ctx, "h1", "ZZZZZZZ")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = uc.Lookup(ctx, "otro-hotel", created.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomRegenerateCode(t *testing.T) {
	_, uc := newRoomFixture(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, "h1", dto.CreateRoomRequest{Number: "7"})
	require.NoError(t, err)

	uc.newCode = func(string, string) string { return "SE007ZZ" }
	out, err := uc.RegenerateCode(ctx, "h1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SE007ZZ", out.Code)

	_, err = uc.Lookup(ctx, "h1", created.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = uc.RegenerateCode(ctx, "h1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomList(t *testing.T) {
	_, uc := newRoomFixture(t)
	ctx := context.Background()
	for _, n := range []string{"3", "1", "2"} {
		_, err := uc.Create(ctx, "h1", dto.CreateRoomRequest{Number: n})
		require.NoError(t, err)
	}
	out, err := uc.List(ctx, "h1", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "1", out.Items[0].Number)
}
