package customerrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gocustomer/internal/domain"
	"gocustomer/internal/pkg/cache"
)

const (
	customerIDCacheKey  = "customer:id:%s"
	customerCPFCacheKey = "customer:cpf:%s"
)

// cachedCustomer é a forma serializada do cliente no Redis.
type cachedCustomer struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	CPF   string    `json:"cpf"`
}

func idCacheKey(id uuid.UUID) string { return fmt.Sprintf(customerIDCacheKey, id) }
func cpfCacheKey(cpf string) string  { return fmt.Sprintf(customerCPFCacheKey, cpf) }

// fromCache tenta ler o cliente do cache. Falhas de cache nunca interrompem a busca:
// são registradas e a leitura segue para o banco.
func (r *PostgresRepository) fromCache(ctx context.Context, key string) (domain.Customer, bool) {
	if r.Cache == nil {
		return domain.Customer{}, false
	}

	data, err := r.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return domain.Customer{}, false
	}

	var cached cachedCustomer
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		r.logger.Warn("Entrada de cache corrompida, descartando.", map[string]interface{}{"key": key, "error": err.Error()})
		_ = r.Cache.Delete(ctx, key)
		return domain.Customer{}, false
	}

	customer, err := domain.NewCustomer(cached.ID, cached.Name, cached.Email, cached.CPF)
	if err != nil {
		r.logger.Warn("Entrada de cache inválida, descartando.", map[string]interface{}{"key": key, "error": err.Error()})
		_ = r.Cache.Delete(ctx, key)
		return domain.Customer{}, false
	}

	r.logger.Debug("Cache HIT de cliente.", map[string]interface{}{"key": key})
	return customer, true
}

// cacheCustomer grava o cliente sob as duas chaves (ID e CPF).
func (r *PostgresRepository) cacheCustomer(ctx context.Context, customer domain.Customer) {
	if r.Cache == nil {
		return
	}

	data, err := json.Marshal(cachedCustomer{
		ID:    customer.ID(),
		Name:  customer.Name(),
		Email: customer.Email(),
		CPF:   customer.CPF(),
	})
	if err != nil {
		r.logger.Warn("Falha ao serializar cliente para cache.", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, key := range []string{idCacheKey(customer.ID()), cpfCacheKey(customer.CPF())} {
		if err := r.Cache.Set(ctx, key, data, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar no cache Redis.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
}
