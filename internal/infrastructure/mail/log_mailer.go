package mail

import (
	"context"

	"github.com/jhoicas/hotelops-api/internal/application/ports"
	"github.com/jhoicas/hotelops-api/pkg/logger"
)

// LogMailer registra los emails en el log en vez de enviarlos (desarrollo, sin SMTP_HOST).
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el adaptador.
func NewLogMailer(log *logger.Logger) *LogMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &LogMailer{log: log.Component("mail")}
}

func (m *LogMailer) Send(ctx context.Context, msg ports.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("email no enviado (SMTP sin configurar)")
	return nil
}
