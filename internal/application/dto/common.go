package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Title + Message se muestran como notificación.
type ErrorResponse struct {
	Code    string `json:"code"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
}

// NotificationDTO aviso transitorio que acompaña una respuesta.
type NotificationDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"` // default | destructive
}

// MessageResponse respuesta genérica con notificaciones.
type MessageResponse struct {
	Message       string            `json:"message"`
	Notifications []NotificationDTO `json:"notifications,omitempty"`
}
