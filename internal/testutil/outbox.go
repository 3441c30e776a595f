package testutil

import (
	"context"
	"sync"

	"github.com/jhoicas/hotelops-api/internal/application/ports"
)

var _ ports.Mailer = (*Outbox)(nil)

// Outbox Mailer que guarda los mensajes enviados. Err fuerza un fallo de envío.
type Outbox struct {
	mu   sync.Mutex
	sent []ports.Message
	Err  error
}

func (o *Outbox) Send(_ context.Context, msg ports.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.sent = append(o.sent, msg)
	return nil
}

// Sent copia de los mensajes enviados.
func (o *Outbox) Sent() []ports.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]ports.Message(nil), o.sent...)
}

// Last último mensaje o el valor cero.
func (o *Outbox) Last() ports.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.sent) == 0 {
		return ports.Message{}
	}
	return o.sent[len(o.sent)-1]
}
