// Package hotelcache cachea hotelId → código de hotel con TTL e invalidación explícita.
package hotelcache

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/hotelops-api/internal/application/ports"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

const keyPrefix = "hotel_code:"

// DefaultTTL vida de una entrada si no se configura otra.
const DefaultTTL = time.Hour

// CodeSource origen de verdad del código (HotelRepository lo satisface).
type CodeSource interface {
	GetCode(ctx context.Context, id string) (string, error)
}

// Cache lectura con relleno perezoso. Un fallo del almacén de caché no es fatal: se
// consulta la base y se registra el error.
type Cache struct {
	store  ports.CacheRepository
	source CodeSource
	ttl    time.Duration
	log    *logger.Logger
}

// New construye la caché. ttl <= 0 usa DefaultTTL.
func New(store ports.CacheRepository, source CodeSource, ttl time.Duration, log *logger.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{store: store, source: source, ttl: ttl, log: log.Component("hotelcache")}
}

// Code devuelve el código del hotel. domain.ErrHotelNotFound si el hotel no existe.
func (c *Cache) Code(ctx context.Context, hotelID string) (string, error) {
	if hotelID == "" {
		return "", domain.ErrHotelNotFound
	}
	raw, err := c.store.Get(ctx, key(hotelID))
	if err != nil {
		c.log.Warn().Err(err).Str("hotel_id", hotelID).Msg("lectura de caché falló")
	} else if raw != nil {
		return string(raw), nil
	}

	code, err := c.source.GetCode(ctx, hotelID)
	if err != nil {
		return "", fmt.Errorf("hotel code: %w", err)
	}
	if code == "" {
		return "", domain.ErrHotelNotFound
	}
	c.Store(ctx, hotelID, code)
	return code, nil
}

// Store guarda un código recién creado o regenerado.
func (c *Cache) Store(ctx context.Context, hotelID, code string) {
	if err := c.store.Set(ctx, key(hotelID), []byte(code), c.ttl); err != nil {
		c.log.Warn().Err(err).Str("hotel_id", hotelID).Msg("escritura de caché falló")
	}
}

// Invalidate descarta la entrada del hotel.
func (c *Cache) Invalidate(ctx context.Context, hotelID string) error {
	if _, err := c.store.Delete(ctx, key(hotelID)); err != nil {
		return fmt.Errorf("invalidate hotel code: %w", err)
	}
	return nil
}

func key(hotelID string) string { return keyPrefix + hotelID }
