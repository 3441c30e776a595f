package dto

import "time"

// SignUpRequest registro de un administrador.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,bcrypt"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// SignUpResponse resultado del registro. Redirect lleva al login con newAdmin=true.
type SignUpResponse struct {
	User     UserResponse `json:"user"`
	Redirect string       `json:"redirect"`
}

// LoginRequest login con credenciales (staff/admin).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GuestLoginRequest login de huésped con código de hotel y código de habitación.
type GuestLoginRequest struct {
	HotelCode string `json:"hotel_code" validate:"required,min=4,max=16,alphanum"`
	RoomCode  string `json:"room_code" validate:"required,min=4,max=16,alphanum"`
}

// LoginResponse token de sesión, perfil y redirección decidida por la tabla de navegación.
// Redirect vacío = permanecer en el login (p. ej. panel de configurar contraseña).
type LoginResponse struct {
	Token              string       `json:"token"`
	ExpiresAt          time.Time    `json:"expires_at"`
	User               UserResponse `json:"user"`
	NeedsPasswordSetup bool         `json:"needs_password_setup"`
	Redirect           string       `json:"redirect,omitempty"`
}

// EmailRequest operaciones que solo requieren email (reenvío, reset).
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenRequest verificación de email con el token del enlace.
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// PasswordResetRequest completa el reset con el token del enlace.
type PasswordResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,bcrypt"`
}

// PasswordSetupRequest primera contraseña del staff invitado.
type PasswordSetupRequest struct {
	Password string `json:"password" validate:"required,min=8,bcrypt"`
}

// VerificationResponse estado de verificación del email de la sesión.
type VerificationResponse struct {
	Verified bool `json:"verified"`
}

// UserResponse perfil de aplicación (sin credenciales).
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email,omitempty"`
	Name               string    `json:"name,omitempty"`
	HotelID            *string   `json:"hotel_id"`
	Role               string    `json:"role"`
	CanManageRooms     bool      `json:"can_manage_rooms"`
	CanManageStaff     bool      `json:"can_manage_staff"`
	RoomNumber         string    `json:"room_number,omitempty"`
	NeedsPasswordSetup bool      `json:"needs_password_setup"`
	EmailVerified      bool      `json:"email_verified"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

// RedirectResponse destino del SPA tras una acción (verificación de email).
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// PasswordSetupResponse perfil actualizado y redirección tras configurar la contraseña.
type PasswordSetupResponse struct {
	User     UserResponse `json:"user"`
	Redirect string       `json:"redirect,omitempty"`
}
