package ports

import "context"

// Message email saliente (verificación, reset de contraseña, invitación de staff).
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer puerto de salida para el envío de emails.
// Cualquier adaptador (SMTP, log, mock) debe implementar esta interfaz.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
