package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, name, hotel_id, role, can_manage_rooms, can_manage_staff, room_number,
	needs_password_setup, email_verified, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo perfil. El ID es el de la identidad.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	role, canRooms, canStaff, room := grantColumns(user.Grant)
	query := `
		INSERT INTO users (id, email, name, hotel_id, role, can_manage_rooms, can_manage_staff, room_number,
			needs_password_setup, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.HotelID, role, canRooms, canStaff, room,
		user.NeedsPasswordSetup, user.EmailVerified, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert user: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Update actualiza nombre, rol y capacidades.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	role, canRooms, canStaff, room := grantColumns(user.Grant)
	query := `
		UPDATE users SET name = $2, role = $3, can_manage_rooms = $4, can_manage_staff = $5,
			room_number = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, user.ID, user.Name, role, canRooms, canStaff, room, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListByHotel lista los usuarios de un hotel con paginación.
func (r *UserRepo) ListByHotel(ctx context.Context, hotelID string, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE hotel_id = $1 ORDER BY created_at, email LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, hotelID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// AssignHotel asocia el hotel solo si el usuario aún no tiene uno.
func (r *UserRepo) AssignHotel(ctx context.Context, userID, hotelID string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET hotel_id = $2, updated_at = now() WHERE id = $1 AND hotel_id IS NULL`,
		userID, hotelID)
	if err != nil {
		return fmt.Errorf("assign hotel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHotelAlreadySetUp
	}
	return nil
}

// CompletePasswordSetup limpia el flag needs_password_setup.
func (r *UserRepo) CompletePasswordSetup(ctx context.Context, userID string) error {
	return r.touchFlag(ctx, `UPDATE users SET needs_password_setup = false, updated_at = now() WHERE id = $1`, userID)
}

// MarkEmailVerified replica la confirmación de la identidad en el perfil.
func (r *UserRepo) MarkEmailVerified(ctx context.Context, userID string) error {
	return r.touchFlag(ctx, `UPDATE users SET email_verified = true, updated_at = now() WHERE id = $1`, userID)
}

// Delete elimina el perfil.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.touchFlag(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepo) touchFlag(ctx context.Context, query, userID string) error {
	tag, err := r.q.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func grantColumns(g entity.Grant) (role string, canRooms, canStaff bool, room *string) {
	switch v := g.(type) {
	case entity.AdminGrant:
		return string(entity.RoleAdmin), true, true, nil
	case entity.StaffGrant:
		return string(entity.RoleStaff), v.CanManageRooms, v.CanManageStaff, nil
	case entity.GuestGrant:
		return string(entity.RoleGuest), false, false, nullIfEmpty(v.RoomNumber)
	default:
		return "", false, false, nil
	}
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var (
		u        entity.User
		role     string
		canRooms bool
		canStaff bool
		room     *string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.HotelID, &role, &canRooms, &canStaff, &room,
		&u.NeedsPasswordSetup, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	parsed, err := entity.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	u.Grant, err = entity.NewGrant(parsed, canRooms, canStaff, derefString(room))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return &u, nil
}
