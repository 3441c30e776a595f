package dto

// NavigationResponse estado de navegación derivado para la sesión actual.
// Redirect vacío = sin navegación. Replace indica reemplazo del historial.
type NavigationResponse struct {
	State         string            `json:"state"`
	Mode          string            `json:"mode"`
	Redirect      string            `json:"redirect,omitempty"`
	Replace       bool              `json:"replace,omitempty"`
	NewAdmin      bool              `json:"new_admin"`
	Verified      bool              `json:"verified"`
	Notifications []NotificationDTO `json:"notifications,omitempty"`
}

// SwitchModeRequest cambio de modo de login.
type SwitchModeRequest struct {
	Mode string `json:"mode" validate:"required"`
}
