// Package events publica eventos de domínio de clientes para outros serviços.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gocustomer/internal/domain"
)

// CustomerRegisteredEvent é o nome (e routing key) do evento de cadastro.
const CustomerRegisteredEvent = "customer.registered"

// CustomerRegistered é o payload publicado após um cadastro bem sucedido.
type CustomerRegistered struct {
	EventID    string    `json:"event_id"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	CPF        string    `json:"cpf"`
}

// NewCustomerRegistered monta o evento a partir do cliente persistido.
func NewCustomerRegistered(c domain.Customer, at time.Time) CustomerRegistered {
	return CustomerRegistered{
		EventID:    uuid.NewString(),
		Event:      CustomerRegisteredEvent,
		OccurredAt: at.UTC(),
		CustomerID: c.ID().String(),
		Name:       c.Name(),
		Email:      c.Email(),
		CPF:        c.CPF(),
	}
}

// Publisher entrega eventos de cliente ao broker.
type Publisher interface {
	PublishCustomerRegistered(ctx context.Context, event CustomerRegistered) error
	Close() error
}

// NoopPublisher descarta os eventos (RABBITMQ_URL não configurado).
type NoopPublisher struct{}

func (NoopPublisher) PublishCustomerRegistered(context.Context, CustomerRegistered) error { return nil }
func (NoopPublisher) Close() error                                                       { return nil }
