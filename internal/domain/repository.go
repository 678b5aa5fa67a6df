package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Sentinelas de persistência. Os repositórios devolvem estes erros (opcionalmente encapsulados)
// e o caso de uso os traduz para erros de domínio.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicateCPF     = errors.New("customer cpf already registered")
)

// CustomerRepository é a porta de persistência que o caso de uso de clientes consome.
// Qualquer tecnologia de armazenamento pode implementá-la.
//
// Implementações devem garantir unicidade do CPF na escrita: Save devolve ErrDuplicateCPF
// quando outro cliente com o mesmo CPF foi gravado entre a checagem e a inserção.
type CustomerRepository interface {
	// Save persiste o cliente e devolve a representação gravada (possivelmente relida).
	Save(ctx context.Context, customer Customer) (Customer, error)
	// FindByID devolve ErrCustomerNotFound quando não há registro.
	FindByID(ctx context.Context, id uuid.UUID) (Customer, error)
	// FindByCPF recebe os dígitos do CPF e devolve ErrCustomerNotFound quando não há registro.
	FindByCPF(ctx context.Context, cpf string) (Customer, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	FindAll(ctx context.Context) ([]Customer, error)
}
