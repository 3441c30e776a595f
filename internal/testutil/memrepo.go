// Package testutil repositorios en memoria y dobles de puertos para los tests de aplicación
// y HTTP. Respetan las mismas reglas de unicidad que el esquema PostgreSQL.
package testutil

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/hotelops-api/internal/application/ports"
	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
	"github.com/jhoicas/hotelops-api/internal/domain/repository"
)

// Store estado compartido de todos los repos en memoria.
type Store struct {
	mu         sync.Mutex
	identities map[string]entity.Identity
	users      map[string]entity.User
	hotels     map[string]entity.Hotel
	rooms      map[string]entity.Room
	onboarding map[string]bool
	tutorials  map[string]map[string]bool
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		identities: map[string]entity.Identity{},
		users:      map[string]entity.User{},
		hotels:     map[string]entity.Hotel{},
		rooms:      map[string]entity.Room{},
		onboarding: map[string]bool{},
		tutorials:  map[string]map[string]bool{},
	}
}

func (s *Store) Identities() *IdentityRepo    { return &IdentityRepo{s: s} }
func (s *Store) Users() *UserRepo             { return &UserRepo{s: s} }
func (s *Store) Hotels() *HotelRepo           { return &HotelRepo{s: s} }
func (s *Store) Rooms() *RoomRepo             { return &RoomRepo{s: s} }
func (s *Store) Preferences() *PreferenceRepo { return &PreferenceRepo{s: s} }
func (s *Store) TxRunner() *TxRunner          { return &TxRunner{s: s} }

var (
	_ repository.IdentityRepository   = (*IdentityRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.HotelRepository      = (*HotelRepo)(nil)
	_ repository.RoomRepository       = (*RoomRepo)(nil)
	_ repository.PreferenceRepository = (*PreferenceRepo)(nil)
	_ ports.HotelTxRunner             = (*TxRunner)(nil)
)

// ── identities ────────────────────────────────────────────────────────────────

type IdentityRepo struct{ s *Store }

func (r *IdentityRepo) Create(_ context.Context, i *entity.Identity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.identities {
		if strings.EqualFold(e.Email, i.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.identities[i.ID] = *i
	return nil
}

func (r *IdentityRepo) GetByID(_ context.Context, id string) (*entity.Identity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i, ok := r.s.identities[id]; ok {
		return &i, nil
	}
	return nil, nil
}

func (r *IdentityRepo) GetByEmail(_ context.Context, email string) (*entity.Identity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, i := range r.s.identities {
		if strings.EqualFold(i.Email, email) {
			return &i, nil
		}
	}
	return nil, nil
}

func (r *IdentityRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.identities[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	i.PasswordHash = hash
	r.s.identities[id] = i
	return nil
}

func (r *IdentityRepo) ConfirmEmail(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.identities[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if i.EmailConfirmedAt == nil {
		now := time.Now()
		i.EmailConfirmedAt = &now
	}
	r.s.identities[id] = i
	return nil
}

func (r *IdentityRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.identities, id)
	delete(r.s.users, id)
	return nil
}

// ── users ─────────────────────────────────────────────────────────────────────

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.users {
		if strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	if u.HotelID != nil {
		if _, ok := r.s.hotels[*u.HotelID]; !ok {
			return domain.ErrInvalidInput
		}
	}
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		c := cloneUser(u)
		return &c, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	cur.Name, cur.Grant, cur.UpdatedAt = u.Name, u.Grant, u.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

func (r *UserRepo) ListByHotel(_ context.Context, hotelID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.User
	for _, u := range r.s.users {
		if u.HotelIDValue() == hotelID {
			c := cloneUser(u)
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return page(list, limit, offset), nil
}

func (r *UserRepo) AssignHotel(_ context.Context, userID, hotelID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrHotelAlreadySetUp
	}
	if u.HasHotel() {
		return domain.ErrHotelAlreadySetUp
	}
	u.HotelID = &hotelID
	r.s.users[userID] = u
	return nil
}

func (r *UserRepo) CompletePasswordSetup(_ context.Context, userID string) error {
	return r.mutate(userID, func(u *entity.User) { u.NeedsPasswordSetup = false })
}

func (r *UserRepo) MarkEmailVerified(_ context.Context, userID string) error {
	return r.mutate(userID, func(u *entity.User) { u.EmailVerified = true })
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) mutate(id string, fn func(*entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	fn(&u)
	r.s.users[id] = u
	return nil
}

// ── hotels ────────────────────────────────────────────────────────────────────

type HotelRepo struct{ s *Store }

func (r *HotelRepo) Create(_ context.Context, h *entity.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.hotels {
		if e.Code == h.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.hotels[h.ID] = *h
	return nil
}

func (r *HotelRepo) GetByID(_ context.Context, id string) (*entity.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if h, ok := r.s.hotels[id]; ok {
		return &h, nil
	}
	return nil, nil
}

func (r *HotelRepo) GetByCode(_ context.Context, code string) (*entity.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.hotels {
		if h.Code == code {
			return &h, nil
		}
	}
	return nil, nil
}

func (r *HotelRepo) GetCode(_ context.Context, id string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.hotels[id].Code, nil
}

func (r *HotelRepo) Update(_ context.Context, h *entity.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.hotels[h.ID]
	if !ok {
		return domain.ErrHotelNotFound
	}
	h.Code = cur.Code
	r.s.hotels[h.ID] = *h
	return nil
}

func (r *HotelRepo) UpdateCode(_ context.Context, id, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for hid, e := range r.s.hotels {
		if e.Code == code && hid != id {
			return domain.ErrDuplicate
		}
	}
	h, ok := r.s.hotels[id]
	if !ok {
		return domain.ErrHotelNotFound
	}
	h.Code = code
	r.s.hotels[id] = h
	return nil
}

// ── rooms ─────────────────────────────────────────────────────────────────────

type RoomRepo struct{ s *Store }

func (r *RoomRepo) Create(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.rooms {
		if e.Code == room.Code {
			return domain.ErrDuplicate
		}
		if e.HotelID == room.HotelID && e.Number == room.Number {
			return domain.ErrConflict
		}
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *RoomRepo) GetByID(_ context.Context, hotelID, id string) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if room, ok := r.s.rooms[id]; ok && room.HotelID == hotelID {
		return &room, nil
	}
	return nil, nil
}

func (r *RoomRepo) GetByCode(_ context.Context, hotelID, code string) (*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, room := range r.s.rooms {
		if room.HotelID == hotelID && room.Code == code {
			return &room, nil
		}
	}
	return nil, nil
}

func (r *RoomRepo) ListByHotel(_ context.Context, hotelID string, limit, offset int) ([]*entity.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Room
	for _, room := range r.s.rooms {
		if room.HotelID == hotelID {
			c := room
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return page(list, limit, offset), nil
}

func (r *RoomRepo) UpdateCode(_ context.Context, hotelID, id, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for rid, e := range r.s.rooms {
		if e.Code == code && rid != id {
			return domain.ErrDuplicate
		}
	}
	room, ok := r.s.rooms[id]
	if !ok || room.HotelID != hotelID {
		return domain.ErrNotFound
	}
	room.Code = code
	r.s.rooms[id] = room
	return nil
}

// ── preferences ───────────────────────────────────────────────────────────────

type PreferenceRepo struct{ s *Store }

func (r *PreferenceRepo) IsOnboardingCompleted(_ context.Context, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.onboarding[userID], nil
}

func (r *PreferenceRepo) CompleteOnboarding(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.onboarding[userID] = true
	return nil
}

func (r *PreferenceRepo) HasViewedTutorial(_ context.Context, userID, tutorialID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.tutorials[userID][tutorialID], nil
}

func (r *PreferenceRepo) MarkTutorialViewed(_ context.Context, userID, tutorialID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.tutorials[userID] == nil {
		r.s.tutorials[userID] = map[string]bool{}
	}
	r.s.tutorials[userID][tutorialID] = true
	return nil
}

func (r *PreferenceRepo) ListViewedTutorials(_ context.Context, userID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := []string{}
	for id := range r.s.tutorials[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ── transacciones ─────────────────────────────────────────────────────────────

// TxRunner ejecuta fn sobre los mismos repos y restaura hoteles y usuarios si fn falla.
type TxRunner struct{ s *Store }

func (t *TxRunner) RunHotelSetup(_ context.Context, fn func(repository.HotelRepository, repository.UserRepository) error) error {
	t.s.mu.Lock()
	hotels, users := maps.Clone(t.s.hotels), maps.Clone(t.s.users)
	t.s.mu.Unlock()

	if err := fn(t.s.Hotels(), t.s.Users()); err != nil {
		t.s.mu.Lock()
		t.s.hotels, t.s.users = hotels, users
		t.s.mu.Unlock()
		return err
	}
	return nil
}

func cloneUser(u entity.User) entity.User {
	if u.HotelID != nil {
		id := *u.HotelID
		u.HotelID = &id
	}
	return u
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
