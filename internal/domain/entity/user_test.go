package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotelops-api/internal/domain"
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

func TestNewGrant_Invariantes(t *testing.T) {
	g, err := entity.NewGrant(entity.RoleGuest, false, false, " 204 ")
	require.NoError(t, err)
	assert.Equal(t, entity.GuestGrant{RoomNumber: "204"}, g)

	_, err = entity.NewGrant(entity.RoleGuest, false, false, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "huésped sin habitación")

	_, err = entity.NewGrant(entity.RoleStaff, true, false, "101")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "staff con habitación")

	_, err = entity.NewGrant(entity.RoleAdmin, false, false, "101")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "admin con habitación")

	_, err = entity.NewGrant("owner", false, false, "")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

// Los flags persistidos de un admin se ignoran: la variante no los tiene.
func TestNewGrant_AdminIgnoraFlags(t *testing.T) {
	g, err := entity.NewGrant(entity.RoleAdmin, false, false, "")
	require.NoError(t, err)
	assert.Equal(t, entity.AdminGrant{}, g)
}

func TestParseRole(t *testing.T) {
	r, err := entity.ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, r)

	_, err = entity.ParseRole("bodeguero")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUser_Helpers(t *testing.T) {
	var nilUser *entity.User
	assert.Equal(t, entity.Role(""), nilUser.Role())
	assert.Equal(t, "", nilUser.RoomNumber())
	assert.False(t, nilUser.HasHotel())

	hotel := "h-1"
	u := &entity.User{HotelID: &hotel, Grant: entity.GuestGrant{RoomNumber: "12"}}
	assert.Equal(t, entity.RoleGuest, u.Role())
	assert.Equal(t, "12", u.RoomNumber())
	assert.Equal(t, "h-1", u.HotelIDValue())
}
