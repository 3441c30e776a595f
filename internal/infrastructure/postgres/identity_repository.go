package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
)

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

// IdentityRepo credenciales (auth_identities) sobre PostgreSQL.
type IdentityRepo struct {
	q Querier
}

// NewIdentityRepository construye el adaptador.
func NewIdentityRepository(q Querier) *IdentityRepo {
	return &IdentityRepo{q: q}
}

// Create persiste la identidad. Email repetido → domain.ErrEmailAlreadyExists.
func (r *IdentityRepo) Create(ctx context.Context, identity *entity.Identity) error {
	query := `
		INSERT INTO auth_identities (id, email, password_hash, email_confirmed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		identity.ID, identity.Email, identity.PasswordHash, identity.EmailConfirmedAt,
		identity.CreatedAt, identity.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// GetByID obtiene la identidad por ID.
func (r *IdentityRepo) GetByID(ctx context.Context, id string) (*entity.Identity, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByEmail obtiene la identidad por email (sin distinguir mayúsculas).
func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return r.getOne(ctx, `WHERE lower(email) = lower($1)`, email)
}

// UpdatePassword reemplaza el hash.
func (r *IdentityRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE auth_identities SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ConfirmEmail marca el email como verificado; idempotente.
func (r *IdentityRepo) ConfirmEmail(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE auth_identities SET email_confirmed_at = COALESCE(email_confirmed_at, now()), updated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina la identidad; el perfil cae en cascada.
func (r *IdentityRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM auth_identities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}

func (r *IdentityRepo) getOne(ctx context.Context, where string, arg any) (*entity.Identity, error) {
	var i entity.Identity
	err := r.q.QueryRow(ctx, `
		SELECT id, email, password_hash, email_confirmed_at, created_at, updated_at
		FROM auth_identities `+where, arg).Scan(
		&i.ID, &i.Email, &i.PasswordHash, &i.EmailConfirmedAt, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return &i, nil
}
