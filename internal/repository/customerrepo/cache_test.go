package customerrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocustomer/internal/domain"
	"gocustomer/internal/pkg/cache"
	"gocustomer/internal/pkg/logger"
)

func newCachedRepo(c cache.Client) *PostgresRepository {
	// DB nil: estes testes só exercitam o caminho do cache.
	return NewPostgresRepository(nil, c, time.Second, time.Minute, logger.NewNopLogger())
}

func TestCacheCustomer_WritesBothKeys(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryClient()
	repo := newCachedRepo(mem)

	customer, err := domain.NewCustomer(uuid.New(), "Ana", "ana@example.com", "11144477735")
	require.NoError(t, err)

	repo.cacheCustomer(ctx, customer)

	for _, key := range []string{idCacheKey(customer.ID()), cpfCacheKey("11144477735")} {
		got, ok := repo.fromCache(ctx, key)
		require.True(t, ok, key)
		assert.True(t, got.Equal(customer))
		assert.Equal(t, "ana@example.com", got.Email())
	}
}

func TestFindByID_CacheHitSkipsDatabase(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryClient()
	repo := newCachedRepo(mem)

	customer, err := domain.NewCustomer(uuid.New(), "Ana", "", "52998224725")
	require.NoError(t, err)
	repo.cacheCustomer(ctx, customer)

	byID, err := repo.FindByID(ctx, customer.ID())
	require.NoError(t, err)
	assert.Equal(t, "Ana", byID.Name())

	byCPF, err := repo.FindByCPF(ctx, "52998224725")
	require.NoError(t, err)
	assert.Equal(t, customer.ID(), byCPF.ID())
}

func TestFromCache_CorruptEntryIsEvicted(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryClient()
	repo := newCachedRepo(mem)

	key := cpfCacheKey("11144477735")
	require.NoError(t, mem.Set(ctx, key, "{not-json", time.Minute))

	_, ok := repo.fromCache(ctx, key)
	assert.False(t, ok)

	_, err := mem.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestFromCache_InvalidCustomerIsEvicted(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryClient()
	repo := newCachedRepo(mem)

	key := idCacheKey(uuid.New())
	require.NoError(t, mem.Set(ctx, key, `{"id":"`+uuid.NewString()+`","name":"Ana","cpf":"123"}`, time.Minute))

	_, ok := repo.fromCache(ctx, key)
	assert.False(t, ok)

	_, err := mem.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestFromCache_NilCacheIsMiss(t *testing.T) {
	repo := newCachedRepo(nil)

	_, ok := repo.fromCache(context.Background(), cpfCacheKey("11144477735"))
	assert.False(t, ok)
}
