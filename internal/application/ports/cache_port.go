package ports

import (
	"context"
	"time"
)

// CacheRepository puerto de caché clave/valor con TTL.
// Lo implementan el adaptador Redis y la caché en memoria del proceso.
type CacheRepository interface {
	// Set guarda value con el TTL dado. TTL 0 = sin expiración.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get devuelve nil (sin error) si la clave no existe o expiró.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete devuelve true si la clave existía.
	Delete(ctx context.Context, key string) (bool, error)
}
