package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
)

// Asegura que HotelRepo implementa repository.HotelRepository.
var _ repository.HotelRepository = (*HotelRepo)(nil)

// HotelRepo implementación del puerto HotelRepository sobre PostgreSQL.
type HotelRepo struct {
	q Querier
}

// NewHotelRepository construye el adaptador de persistencia para hoteles. Pasar pool o tx (Querier).
func NewHotelRepository(q Querier) *HotelRepo {
	return &HotelRepo{q: q}
}

// Create persiste un nuevo hotel. Código repetido → domain.ErrDuplicate.
func (r *HotelRepo) Create(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		INSERT INTO hotels (id, name, code, address, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		hotel.ID, hotel.Name, hotel.Code, hotel.Address,
		hotel.Phone, hotel.Email, hotel.Status,
		hotel.CreatedAt, hotel.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert hotel: %w", err)
	}
	return nil
}

// GetByID obtiene un hotel por ID.
func (r *HotelRepo) GetByID(ctx context.Context, id string) (*entity.Hotel, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCode obtiene un hotel por su código público.
func (r *HotelRepo) GetByCode(ctx context.Context, code string) (*entity.Hotel, error) {
	return r.getOne(ctx, `WHERE code = $1`, code)
}

// GetCode devuelve solo el código del hotel ("" si no existe).
func (r *HotelRepo) GetCode(ctx context.Context, id string) (string, error) {
	var code string
	err := r.q.QueryRow(ctx, `SELECT code FROM hotels WHERE id = $1`, id).Scan(&code)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("get hotel code: %w", err)
	}
	return code, nil
}

// Update actualiza los datos de contacto del hotel.
func (r *HotelRepo) Update(ctx context.Context, hotel *entity.Hotel) error {
	query := `
		UPDATE hotels SET name = $2, address = $3, phone = $4, email = $5, status = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		hotel.ID, hotel.Name, hotel.Address, hotel.Phone, hotel.Email, hotel.Status, hotel.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update hotel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

// UpdateCode reemplaza el código. Código repetido → domain.ErrDuplicate.
func (r *HotelRepo) UpdateCode(ctx context.Context, id, code string) error {
	tag, err := r.q.Exec(ctx, `UPDATE hotels SET code = $2, updated_at = now() WHERE id = $1`, id, code)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update hotel code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHotelNotFound
	}
	return nil
}

func (r *HotelRepo) getOne(ctx context.Context, where string, arg any) (*entity.Hotel, error) {
	query := `
		SELECT id, name, code, address, phone, email, status, created_at, updated_at
		FROM hotels ` + where
	var h entity.Hotel
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&h.ID, &h.Name, &h.Code, &h.Address, &h.Phone, &h.Email, &h.Status,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hotel: %w", err)
	}
	return &h, nil
}
