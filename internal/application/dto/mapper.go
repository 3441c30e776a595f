package dto

import (
	"github.com/jhoicas/hotelops-api/internal/domain/entity"
)

// UserToResponse convierte el perfil en su salida HTTP.
func UserToResponse(u *entity.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	out := UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		HotelID:            u.HotelID,
		Role:               string(u.Role()),
		RoomNumber:         u.RoomNumber(),
		NeedsPasswordSetup: u.NeedsPasswordSetup,
		EmailVerified:      u.EmailVerified,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	switch g := u.Grant.(type) {
	case entity.AdminGrant:
		out.CanManageRooms, out.CanManageStaff = true, true
	case entity.StaffGrant:
		out.CanManageRooms, out.CanManageStaff = g.CanManageRooms, g.CanManageStaff
	}
	return out
}

// UsersToResponse convierte un listado.
func UsersToResponse(list []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, UserToResponse(u))
	}
	return out
}

// HotelToResponse convierte un hotel.
func HotelToResponse(h *entity.Hotel) *HotelResponse {
	if h == nil {
		return nil
	}
	return &HotelResponse{
		ID:        h.ID,
		Name:      h.Name,
		Code:      h.Code,
		Address:   h.Address,
		Phone:     h.Phone,
		Email:     h.Email,
		Status:    h.Status,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// RoomToResponse convierte una habitación.
func RoomToResponse(r *entity.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		HotelID:   r.HotelID,
		Number:    r.Number,
		Code:      r.Code,
		Floor:     r.Floor,
		BaseRate:  r.BaseRate,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
