package hotelcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/application/hotelcache"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/infrastructure/cache"
)

type countingSource struct {
	codes map[string]string
	calls int
	err   error
}

func (s *countingSource) GetCode(_ context.Context, id string) (string, error) {
	s.calls++
	return s.codes[id], s.err
}

func TestCache_RellenaYReutiliza(t *testing.T) {
	src := &countingSource{codes: map[string]string{"h1": "SEA7K2"}}
	c := hotelcache.New(cache.NewMemoryCache(), src, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		code, err := c.Code(ctx, "h1")
		require.NoError(t, err)
		assert.Equal(t, "SEA7K2", code)
	}
	assert.Equal(t, 1, src.calls)
}

func TestCache_InvalidateFuerzaRelectura(t *testing.T) {
	src := &countingSource{codes: map[string]string{"h1": "SEA7K2"}}
	c := hotelcache.New(cache.NewMemoryCache(), src, time.Minute, nil)
	ctx := context.Background()

	_, err := c.Code(ctx, "h1")
	require.NoError(t, err)

	src.codes["h1"] = "SEAQ9P"
	require.NoError(t, c.Invalidate(ctx, "h1"))

	code, err := c.Code(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "SEAQ9P", code)
	assert.Equal(t, 2, src.calls)
}

func TestCache_ExpiraPorTTL(t *testing.T) {
	now := time.Now()
	store := cache.NewMemoryCache().WithClock(func() time.Time { return now })
	src := &countingSource{codes: map[string]string{"h1": "SEA7K2"}}
	c := hotelcache.New(store, src, time.Minute, nil)
	ctx := context.Background()

	_, _ = c.Code(ctx, "h1")
	now = now.Add(2 * time.Minute)
	_, _ = c.Code(ctx, "h1")
	assert.Equal(t, 2, src.calls)
}

func TestCache_HotelInexistente(t *testing.T) {
	src := &countingSource{codes: map[string]string{}}
	c := hotelcache.New(cache.NewMemoryCache(), src, 0, nil)

	_, err := c.Code(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrHotelNotFound)

	_, err = c.Code(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrHotelNotFound)
}

func TestCache_ErrorDeBase(t *testing.T) {
	src := &countingSource{err: errors.New("conexión cerrada")}
	c := hotelcache.New(cache.NewMemoryCache(), src, 0, nil)

	_, err := c.Code(context.Background(), "h1")
	assert.ErrorContains(t, err, "conexión cerrada")
}
