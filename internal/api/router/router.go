package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"gocustomer/internal/api/customer"
	_ "gocustomer/internal/api/docs"
	"gocustomer/internal/api/health"
	apperror "gocustomer/internal/errors"
	"gocustomer/internal/pkg/cache"
	"gocustomer/internal/pkg/logger"
	"gocustomer/internal/pkg/metrics"
	"gocustomer/internal/pkg/middleware"
	"gocustomer/internal/pkg/response"
	"gocustomer/internal/pkg/token"
)

// Options reúne os Handlers e a infraestrutura já inicializados por injeção de dependências.
type Options struct {
	CustomerHandler *customer.Handler
	HealthHandler   *health.Handler

	// TokenValidator nil deixa a listagem de clientes sem autenticação.
	TokenValidator middleware.TokenValidator

	// RateLimitStore nil desativa o rate limiter.
	RateLimitStore  cache.Client
	RateLimitMax    int
	RateLimitWindow time.Duration

	AllowedOrigins []string
	Logger         logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares Globais ---
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, apperror.NewNotFoundError("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, apperror.NewMethodNotAllowedError("Method not allowed"))
	})

	// --- 2. Rotas Operacionais (fora do rate limit) ---
	r.Get("/ping", PingHandler)
	if opts.HealthHandler != nil {
		r.Get("/health", opts.HealthHandler.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 3. Rotas do Módulo de Clientes (v1) ---
	r.Route("/v1/customers", func(r chi.Router) {
		if opts.RateLimitStore != nil {
			r.Use(middleware.RateLimiter(opts.RateLimitStore, opts.RateLimitMax, opts.RateLimitWindow, opts.Logger))
		}

		h := opts.CustomerHandler
		r.Post("/", h.RegisterCustomerHandler)
		r.Get("/cpf/{cpf}", h.GetCustomerByCPFHandler)
		r.Get("/{id}", h.GetCustomerByIDHandler)

		// Listagem completa expõe dados pessoais em massa: restrita à equipe quando há JWT configurado.
		r.Group(func(r chi.Router) {
			if opts.TokenValidator != nil {
				r.Use(middleware.RequireRole(opts.TokenValidator, token.RoleStaff))
			}
			r.Get("/", h.ListCustomersHandler)
		})
	})

	return r
}

// PingHandler é uma função utilitária para o health check de liveness.
func PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
