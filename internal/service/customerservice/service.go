package customerservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gocustomer/internal/domain"
	apperror "gocustomer/internal/errors"
)

const msgRecordNotFound = "Record not found"

// IDGenerator gera o identificador de um novo cliente.
type IDGenerator func() uuid.UUID

// Service orquestra o cadastro e as consultas de clientes sobre a porta domain.CustomerRepository.
// Não guarda estado entre chamadas e não faz log: quem chama decide como reportar os erros.
type Service struct {
	repo  domain.CustomerRepository
	newID IDGenerator
}

// Option customiza o Service na construção.
type Option func(*Service)

// WithIDGenerator troca o gerador de IDs (padrão: uuid.New).
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// NewService cria uma nova instância do Service, injetando o Repositório.
func NewService(repo domain.CustomerRepository, opts ...Option) *Service {
	s := &Service{repo: repo, newID: uuid.New}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterCustomer cadastra um novo cliente.
//
// A checagem de duplicidade usa o CPF já sem formatação, então "111.444.777-35" e
// "11144477735" são o mesmo cliente. A validação completa só acontece depois, na
// construção da entidade, preservando a ordem nome, email, CPF dos erros.
func (s *Service) RegisterCustomer(ctx context.Context, name, email, cpf string) (domain.Customer, error) {
	// 1. Unicidade
	digits := domain.StripCPF(cpf)
	exists, err := s.repo.ExistsByCPF(ctx, digits)
	if err != nil {
		return domain.Customer{}, apperror.NewInternalError("failed to check customer existence", err)
	}
	if exists {
		return domain.Customer{}, apperror.NewDomainError(duplicateMessage(digits))
	}

	// 2. Construção validada (nome, email, CPF)
	customer, err := domain.NewCustomer(s.newID(), name, email, cpf)
	if err != nil {
		return domain.Customer{}, err
	}

	// 3. Persistência
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		// Outro cadastro com o mesmo CPF venceu a corrida entre a checagem e a escrita.
		if errors.Is(err, domain.ErrDuplicateCPF) {
			return domain.Customer{}, apperror.WrapDomainError(duplicateMessage(customer.CPF()), err)
		}
		return domain.Customer{}, apperror.NewInternalError("failed to save customer", err)
	}

	return saved, nil
}

// FindCustomerByCPF busca um cliente pelo CPF (com ou sem formatação).
func (s *Service) FindCustomerByCPF(ctx context.Context, cpf string) (domain.Customer, error) {
	customer, err := s.repo.FindByCPF(ctx, domain.StripCPF(cpf))
	if err != nil {
		return domain.Customer{}, translateLookupError(err)
	}
	return customer, nil
}

// FindCustomerByID busca um cliente pelo ID.
func (s *Service) FindCustomerByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Customer{}, translateLookupError(err)
	}
	return customer, nil
}

// FindCustomerAll devolve todos os clientes na ordem em que o armazenamento os entregar.
func (s *Service) FindCustomerAll(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewInternalError("failed to list customers", err)
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

func translateLookupError(err error) error {
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return apperror.NewNotFoundError(msgRecordNotFound)
	}
	return apperror.NewInternalError("failed to find customer", err)
}

func duplicateMessage(cpf string) string {
	return fmt.Sprintf("Customer with CPF %s already exists", cpf)
}
