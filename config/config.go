package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Drivers de armazenamento aceitos em STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config armazena todas as configurações do serviço GoCustomer.
type Config struct {
	// Geral
	Port        string `validate:"required,numeric"`
	Environment string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn error"`

	// Armazenamento
	StorageDriver string        `validate:"oneof=postgres memory"`
	DatabaseURL   string        `validate:"required_if=StorageDriver postgres"`
	DBTimeout     time.Duration `validate:"gt=0"`

	// Cache (Redis). Vazio desativa o cache de leitura; o rate limiter passa a contar em memória.
	RedisAddr string
	CacheTTL  time.Duration `validate:"gt=0"`

	// Segurança (JWT). Vazio deixa a listagem de clientes sem autenticação.
	JWTSecretKey string
	TokenExpiry  time.Duration `validate:"gt=0"`

	// Rate Limiting
	RateLimitMaxRequests int           `validate:"gte=0"`
	RateLimitPeriod      time.Duration `validate:"gt=0"`

	// Mensageria (RabbitMQ). Vazio desativa a publicação de eventos.
	RabbitMQURL string `validate:"omitempty,url"`

	// HTTP
	AllowedOrigins []string `validate:"min=1,dive,required"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente e as valida.
func LoadConfig() (*Config, error) {
	var errs []string
	intEnv := func(key string, def int) int {
		v, err := getIntEnv(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),

		// 2. Armazenamento
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBTimeout:     time.Duration(intEnv("DB_TIMEOUT_SEC", 5)) * time.Second,

		// 3. Cache (Redis)
		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  time.Duration(intEnv("CACHE_TTL_SEC", 300)) * time.Second,

		// 4. Segurança (JWT)
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		TokenExpiry:  time.Duration(intEnv("JWT_EXPIRY_MIN", 60)) * time.Minute,

		// 5. Rate Limiting (0 desativa)
		RateLimitMaxRequests: intEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      time.Duration(intEnv("RATE_LIMIT_PERIOD_MIN", 1)) * time.Minute,

		// 6. Mensageria
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		// 7. HTTP
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuração inválida: %s", strings.Join(errs, "; "))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	return cfg, nil
}

// UsesPostgres informa se o armazenamento configurado é o PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.StorageDriver == StoragePostgres
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente; ausente ou vazia retorna o valor padrão.
func getEnv(key string, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv lê uma variável de ambiente numérica; valor não numérico é erro de configuração.
func getIntEnv(key string, defaultValue int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("%s ('%s') não é um número inteiro válido", key, valueStr)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
