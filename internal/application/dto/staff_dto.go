package dto

// InviteStaffRequest invitación de un miembro del staff.
type InviteStaffRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	CanManageRooms bool   `json:"can_manage_rooms"`
	CanManageStaff bool   `json:"can_manage_staff"`
}

// InviteStaffResponse perfil creado y contraseña temporal (se envía también por email).
type InviteStaffResponse struct {
	User         UserResponse `json:"user"`
	TempPassword string       `json:"temp_password"`
}

// UpdatePermissionsRequest capacidades del staff.
type UpdatePermissionsRequest struct {
	CanManageRooms *bool `json:"can_manage_rooms" validate:"required"`
	CanManageStaff *bool `json:"can_manage_staff" validate:"required"`
}

// StaffListResponse listado de usuarios del hotel.
type StaffListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
