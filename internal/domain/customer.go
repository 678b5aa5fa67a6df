package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperror "gocustomer/internal/errors"
)

// Customer representa um cliente identificado pelo CPF (a Entidade).
// É imutável: os campos só são preenchidos por NewCustomer, que valida tudo antes de devolver o valor.
type Customer struct {
	id    uuid.UUID
	name  string
	email string
	cpf   string
}

// NewCustomer valida e constrói um Customer.
// Ordem das validações: ID, nome, email e por último o CPF.
func NewCustomer(id uuid.UUID, name, email, cpf string) (Customer, error) {
	if id == uuid.Nil {
		return Customer{}, apperror.NewMissingIDError("ID cannot be null")
	}

	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return Customer{}, apperror.NewIllegalArgumentError("Name cannot be null or empty")
	}

	normalizedEmail, err := NormalizeEmail(email)
	if err != nil {
		return Customer{}, err
	}

	normalizedCPF, err := ValidateCPF(cpf)
	if err != nil {
		return Customer{}, err
	}

	return Customer{
		id:    id,
		name:  trimmedName,
		email: normalizedEmail,
		cpf:   normalizedCPF,
	}, nil
}

func (c Customer) ID() uuid.UUID { return c.id }
func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) CPF() string   { return c.cpf }

// IsZero informa se c é o valor zero (nunca passou por NewCustomer).
func (c Customer) IsZero() bool {
	return c.id == uuid.Nil
}

// Equal compara identidade: mesmo ID e mesmo CPF. Nome e email não participam.
func (c Customer) Equal(other Customer) bool {
	return c.id == other.id && c.cpf == other.cpf
}

func (c Customer) String() string {
	return fmt.Sprintf("Customer{id=%s, name=%s, email=%s, cpf=%s}", c.id, c.name, c.email, c.cpf)
}
