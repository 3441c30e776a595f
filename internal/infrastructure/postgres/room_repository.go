package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

const roomColumns = `id, hotel_id, number, code, floor, base_rate, status, created_at, updated_at`

// RoomRepo implementación de RoomRepository sobre PostgreSQL.
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

// Create persiste la habitación. Código repetido → ErrDuplicate (el llamador reintenta);
// número repetido en el hotel → ErrConflict.
func (r *RoomRepo) Create(ctx context.Context, room *entity.Room) error {
	query := `INSERT INTO rooms (` + roomColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		room.ID, room.HotelID, room.Number, room.Code, room.Floor, room.BaseRate, room.Status,
		room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		return mapRoomWriteError("insert room", err)
	}
	return nil
}

// GetByID obtiene una habitación del hotel.
func (r *RoomRepo) GetByID(ctx context.Context, hotelID, id string) (*entity.Room, error) {
	return r.getOne(ctx, `WHERE hotel_id = $1 AND id = $2`, hotelID, id)
}

// GetByCode busca por código dentro del hotel. (nil, nil) = sin coincidencia.
func (r *RoomRepo) GetByCode(ctx context.Context, hotelID, code string) (*entity.Room, error) {
	return r.getOne(ctx, `WHERE hotel_id = $1 AND code = $2`, hotelID, code)
}

// ListByHotel lista habitaciones ordenadas por piso y número.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*entity.Room, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = $1 ORDER BY floor, number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, hotelID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		list = append(list, room)
	}
	return list, rows.Err()
}

// UpdateCode reemplaza el código de acceso de la habitación.
func (r *RoomRepo) UpdateCode(ctx context.Context, hotelID, id, code string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE rooms SET code = $3, updated_at = now() WHERE hotel_id = $1 AND id = $2`,
		hotelID, id, code)
	if err != nil {
		return mapRoomWriteError("update room code", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoomRepo) getOne(ctx context.Context, where string, args ...any) (*entity.Room, error) {
	room, err := scanRoom(r.q.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms `+where, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

func mapRoomWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		if constraintName(err) == "rooms_hotel_id_number_key" {
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		}
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanRoom(row pgxScanner) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID, &room.HotelID, &room.Number, &room.Code, &room.Floor, &room.BaseRate, &room.Status,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
