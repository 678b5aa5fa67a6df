package customerrepo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"gocustomer/internal/domain"
)

// InMemory implementa domain.CustomerRepository em memória (STORAGE_DRIVER=memory e testes).
// A unicidade do CPF é garantida sob o mesmo lock da escrita.
type InMemory struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]domain.Customer
	byCPF map[string]uuid.UUID
	order []uuid.UUID
}

// NewInMemory cria um repositório vazio.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:  make(map[uuid.UUID]domain.Customer),
		byCPF: make(map[string]uuid.UUID),
	}
}

func (r *InMemory) Save(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byCPF[customer.CPF()]; ok && owner != customer.ID() {
		return domain.Customer{}, fmt.Errorf("save customer %s: %w", customer.ID(), domain.ErrDuplicateCPF)
	}

	if previous, ok := r.byID[customer.ID()]; ok {
		delete(r.byCPF, previous.CPF())
	} else {
		r.order = append(r.order, customer.ID())
	}

	r.byID[customer.ID()] = customer
	r.byCPF[customer.CPF()] = customer.ID()
	return customer, nil
}

func (r *InMemory) FindByID(_ context.Context, id uuid.UUID) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.byID[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *InMemory) FindByCPF(_ context.Context, cpf string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCPF[cpf]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return r.byID[id], nil
}

func (r *InMemory) ExistsByCPF(_ context.Context, cpf string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byCPF[cpf]
	return ok, nil
}

// FindAll devolve os clientes na ordem de inserção.
func (r *InMemory) FindAll(_ context.Context) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		customers = append(customers, r.byID[id])
	}
	return customers, nil
}

// Ping satisfaz o health check; o armazenamento em memória está sempre disponível.
func (r *InMemory) Ping(context.Context) error {
	return nil
}
