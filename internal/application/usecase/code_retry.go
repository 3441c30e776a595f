package usecase

import (
	"errors"

	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/pkg/codes"
)

// withUniqueCode genera códigos y llama a persist hasta que no haya colisión
// (domain.ErrDuplicate) o se agoten codes.MaxAttempts intentos.
func withUniqueCode(generate func() string, persist func(code string) error) (string, error) {
	for attempt := 0; attempt < codes.MaxAttempts; attempt++ {
		code := generate()
		err := persist(code)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return "", err
		}
	}
	return "", domain.ErrCodeExhausted
}
