package customerrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gocustomer/internal/domain"
	apperror "gocustomer/internal/errors"
	"gocustomer/internal/pkg/cache"
	"gocustomer/internal/pkg/logger"
)

// uniqueViolation é o SQLSTATE do PostgreSQL para violação de UNIQUE.
const uniqueViolation = "23505"

const (
	insertCustomerSQL = `
		INSERT INTO customers (id, name, email, cpf, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, cpf`

	selectByIDSQL = `
		SELECT id, name, email, cpf
		FROM customers
		WHERE id = $1`

	selectByCPFSQL = `
		SELECT id, name, email, cpf
		FROM customers
		WHERE cpf = $1`

	existsByCPFSQL = `SELECT EXISTS (SELECT 1 FROM customers WHERE cpf = $1)`

	selectAllSQL = `
		SELECT id, name, email, cpf
		FROM customers
		ORDER BY created_at, id`
)

// PostgresRepository implementa domain.CustomerRepository sobre o PostgreSQL,
// com cache-aside opcional no Redis para as buscas por ID e por CPF.
type PostgresRepository struct {
	DB        *sql.DB
	Cache     cache.Client // nil desativa o cache
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewPostgresRepository cria o repositório, injetando o DB, o cache e o logger.
func NewPostgresRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *PostgresRepository {
	return &PostgresRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Save insere o cliente e devolve a linha relida via RETURNING.
// Violação do índice único de CPF vira domain.ErrDuplicateCPF.
func (r *PostgresRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	r.logger.Debug("Iniciando Save de cliente no repositório.", map[string]interface{}{"customer_id": customer.ID().String()})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout, insertCustomerSQL,
		customer.ID(),
		customer.Name(),
		customer.Email(),
		customer.CPF(),
		time.Now().UTC(),
	)

	saved, err := scanCustomer(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.logger.Info("CPF já cadastrado (violação de unicidade).", map[string]interface{}{"customer_id": customer.ID().String()})
			return domain.Customer{}, fmt.Errorf("insert customer %s: %w", customer.ID(), domain.ErrDuplicateCPF)
		}
		r.logger.Error("Falha ao inserir cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("failed to insert customer", err)
	}

	r.cacheCustomer(ctx, saved)

	r.logger.Info("Cliente salvo com sucesso no repositório.", map[string]interface{}{"customer_id": saved.ID().String()})
	return saved, nil
}

// FindByID busca um cliente pelo ID, utilizando a estratégia Cache-Aside.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	r.logger.Debug("Iniciando FindByID de cliente no repositório.", map[string]interface{}{"customer_id": id.String()})

	if customer, ok := r.fromCache(ctx, idCacheKey(id)); ok {
		return customer, nil
	}

	return r.findOne(ctx, selectByIDSQL, id)
}

// FindByCPF busca um cliente pelos dígitos do CPF, utilizando a estratégia Cache-Aside.
func (r *PostgresRepository) FindByCPF(ctx context.Context, cpf string) (domain.Customer, error) {
	r.logger.Debug("Iniciando FindByCPF de cliente no repositório.", nil)

	if customer, ok := r.fromCache(ctx, cpfCacheKey(cpf)); ok {
		return customer, nil
	}

	return r.findOne(ctx, selectByCPFSQL, cpf)
}

// ExistsByCPF sempre consulta o banco: a checagem de unicidade não pode ler um cache velho.
func (r *PostgresRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	if err := r.DB.QueryRowContext(ctxTimeout, existsByCPFSQL, cpf).Scan(&exists); err != nil {
		r.logger.Error("Falha ao verificar existência de CPF no DB.", err)
		return false, apperror.NewDBError("failed to check customer cpf", err)
	}
	return exists, nil
}

// FindAll lista todos os clientes (ordem de cadastro).
func (r *PostgresRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	r.logger.Debug("Iniciando FindAll de clientes no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, selectAllSQL)
	if err != nil {
		r.logger.Error("Falha ao listar clientes no DB.", err)
		return nil, apperror.NewDBError("failed to list customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear cliente do DB.", err)
			return nil, apperror.NewDBError("failed to scan customer", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Falha ao iterar clientes do DB.", err)
		return nil, apperror.NewDBError("failed to iterate customers", err)
	}

	r.logger.Info("Clientes listados.", map[string]interface{}{"count": len(customers)})
	return customers, nil
}

// Ping verifica a conexão com o banco (usado pelo health check).
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg interface{}) (domain.Customer, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	customer, err := scanCustomer(r.DB.QueryRowContext(ctxTimeout, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	if err != nil {
		r.logger.Error("Falha ao buscar cliente no DB.", err)
		return domain.Customer{}, apperror.NewDBError("failed to find customer", err)
	}

	r.cacheCustomer(ctx, customer)
	return customer, nil
}

// rowScanner cobre *sql.Row e *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanCustomer lê uma linha e reconstrói a entidade pela construção validada.
func scanCustomer(row rowScanner) (domain.Customer, error) {
	var (
		id               uuid.UUID
		name, email, cpf string
	)
	if err := row.Scan(&id, &name, &email, &cpf); err != nil {
		return domain.Customer{}, err
	}
	return domain.NewCustomer(id, name, email, cpf)
}
