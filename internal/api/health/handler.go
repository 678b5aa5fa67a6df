package health

import (
	"context"
	"net/http"
	"time"

	"gocustomer/internal/pkg/logger"
	"gocustomer/internal/pkg/response"
)

const (
	statusHealthy       = "healthy"
	statusDegraded      = "degraded"
	statusUnhealthy     = "unhealthy"
	statusNotConfigured = "not configured"
)

// checkTimeout limita cada verificação de dependência.
const checkTimeout = 2 * time.Second

// Dependency é uma dependência externa verificada pelo health check.
// Ping nil significa dependência não configurada.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

type Response struct {
	Status       string            `json:"status"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

type Handler struct {
	deps      []Dependency
	startTime time.Time
	logger    logger.Logger
}

func NewHandler(log logger.Logger, deps ...Dependency) *Handler {
	return &Handler{deps: deps, startTime: time.Now(), logger: log}
}

// Handle responde 200 quando todas as dependências configuradas respondem e 503 caso contrário.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := Response{
		Status:       statusHealthy,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Dependencies: make(map[string]string, len(h.deps)),
	}

	for _, dep := range h.deps {
		if dep.Ping == nil {
			result.Dependencies[dep.Name] = statusNotConfigured
			continue
		}

		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := dep.Ping(ctx)
		cancel()

		if err != nil {
			// O detalhe do erro (DSN, endereço) fica só no log; a resposta é pública.
			h.logger.Warn("Dependência indisponível no health check.", map[string]interface{}{
				"dependency": dep.Name,
				"error":      err.Error(),
			})
			result.Dependencies[dep.Name] = statusUnhealthy
			result.Status = statusDegraded
			continue
		}
		result.Dependencies[dep.Name] = statusHealthy
	}

	status := http.StatusOK
	if result.Status != statusHealthy {
		status = http.StatusServiceUnavailable
	}
	_ = response.JSON(w, status, result)
}
