package dto

// ProvisionRequest payload del webhook de alta de identidad.
type ProvisionRequest struct {
	Record *ProvisionRecord `json:"record"`
}

// ProvisionRecord identidad recién creada.
type ProvisionRecord struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	RawUserMetaData  ProvisionMetadata `json:"raw_user_meta_data"`
	EmailConfirmedAt *string           `json:"email_confirmed_at"`
}

// ProvisionMetadata metadatos opcionales del registro.
type ProvisionMetadata struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	HotelID        string `json:"hotel_id"`
	CanManageRooms bool   `json:"can_manage_rooms"`
	CanManageStaff bool   `json:"can_manage_staff"`
}

// ProvisionResponse respuesta exitosa.
type ProvisionResponse struct {
	Success bool `json:"success"`
}

// ProvisionError respuesta de error del webhook.
type ProvisionError struct {
	Error string `json:"error"`
}
