package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gocustomer/config"
	"gocustomer/internal/pkg/cache"
	"gocustomer/internal/pkg/database"
	"gocustomer/internal/pkg/events"
	"gocustomer/internal/pkg/logger"
	"gocustomer/internal/pkg/middleware"
	"gocustomer/internal/pkg/token"

	// Camadas do Cliente para Injeção de Dependências
	"gocustomer/internal/api/customer"
	"gocustomer/internal/api/health"
	"gocustomer/internal/api/router"
	"gocustomer/internal/domain"
	"gocustomer/internal/repository/customerrepo"
	"gocustomer/internal/service/customerservice"
)

func main() {
	// 0. Variáveis de ambiente (.env é opcional; em Docker vêm do sistema)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Inicialização
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("⚡ Inicializando serviço GoCustomer...", map[string]interface{}{
		"env":     cfg.Environment,
		"storage": cfg.StorageDriver,
	})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Cache (Redis). Sem Redis o rate limiter conta em memória e não há cache de leitura.
	var (
		readCache      cache.Client
		rateLimitStore cache.Client = cache.NewMemoryClient()
		cacheCheck     func(context.Context) error
	)
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao Redis.", err)
		}
		defer redisClient.Close()
		readCache, rateLimitStore, cacheCheck = redisClient, redisClient, redisClient.Ping
		appLog.Info("Conexão Redis estabelecida.", nil)
	}

	// B. Repositório (PostgreSQL ou memória)
	var (
		repo    domain.CustomerRepository
		dbCheck func(context.Context) error
	)
	switch {
	case cfg.UsesPostgres():
		var db *sql.DB
		db, err = database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		pgRepo := customerrepo.NewPostgresRepository(db, readCache, cfg.DBTimeout, cfg.CacheTTL, appLog)
		repo, dbCheck = pgRepo, pgRepo.Ping
		appLog.Info("Conexão PostgreSQL estabelecida.", nil)
	default:
		memRepo := customerrepo.NewInMemory()
		repo, dbCheck = memRepo, memRepo.Ping
		appLog.Warn("Armazenamento em memória: os dados se perdem ao reiniciar.", nil)
	}

	// C. Eventos (RabbitMQ)
	var (
		publisher   events.Publisher = events.NoopPublisher{}
		brokerCheck func(context.Context) error
	)
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao RabbitMQ.", err)
		}
		publisher = rabbit
		brokerCheck = func(context.Context) error {
			if rabbit.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
		appLog.Info("Conexão RabbitMQ estabelecida.", nil)
	}
	defer publisher.Close()

	// 3. INJEÇÃO DE DEPENDÊNCIAS. Ordem: Repository -> Service -> Handler
	customerSvc := customerservice.NewService(repo)
	customerHandler := customer.NewHandler(customerSvc, publisher, appLog)
	healthHandler := health.NewHandler(appLog,
		health.Dependency{Name: "database", Ping: dbCheck},
		health.Dependency{Name: "cache", Ping: cacheCheck},
		health.Dependency{Name: "broker", Ping: brokerCheck},
	)

	var tokenValidator middleware.TokenValidator
	if cfg.JWTSecretKey != "" {
		tokenValidator = token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	} else {
		appLog.Warn("JWT_SECRET_KEY vazio: listagem de clientes sem autenticação.", nil)
	}

	if cfg.RateLimitMaxRequests == 0 {
		rateLimitStore = nil
	}

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(router.Options{
		CustomerHandler: customerHandler,
		HealthHandler:   healthHandler,
		TokenValidator:  tokenValidator,
		RateLimitStore:  rateLimitStore,
		RateLimitMax:    cfg.RateLimitMaxRequests,
		RateLimitWindow: cfg.RateLimitPeriod,
		AllowedOrigins:  cfg.AllowedOrigins,
		Logger:          appLog,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor GoCustomer ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
