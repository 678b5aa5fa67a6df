package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"gocustomer/internal/domain"
	apperror "gocustomer/internal/errors"
	"gocustomer/internal/pkg/events"
	"gocustomer/internal/pkg/logger"
	"gocustomer/internal/pkg/metrics"
	"gocustomer/internal/pkg/middleware"
	"gocustomer/internal/pkg/response"
)

// CustomerService define o contrato que o Handler espera da camada de Serviço.
type CustomerService interface {
	RegisterCustomer(ctx context.Context, name, email, cpf string) (domain.Customer, error)
	FindCustomerByCPF(ctx context.Context, cpf string) (domain.Customer, error)
	FindCustomerByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	FindCustomerAll(ctx context.Context) ([]domain.Customer, error)
}

// publishTimeout limita o tempo que a publicação do evento pode segurar a resposta.
const publishTimeout = 3 * time.Second

// Handler agrupa todos os métodos de Handler do cliente.
type Handler struct {
	Service   CustomerService
	Publisher events.Publisher
	Logger    logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service, o Publisher e o Logger.
func NewHandler(svc CustomerService, publisher events.Publisher, log logger.Logger) *Handler {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Handler{
		Service:   svc,
		Publisher: publisher,
		Logger:    log,
	}
}

// respond escreve o sucesso ou traduz o erro, registrando o resultado no log.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err != nil {
		status := response.Error(w, err)
		if status >= http.StatusInternalServerError {
			h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", apperror.KindOf(err)), err)
		} else {
			h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d.", status), map[string]interface{}{
				"route":    routeOf(r),
				"category": string(apperror.KindOf(err)),
			})
		}
		return
	}

	if encErr := response.JSON(w, successStatus, data); encErr != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", encErr)
		return
	}

	h.Logger.Info("Requisição concluída com sucesso", map[string]interface{}{
		"method": r.Method,
		"route":  routeOf(r),
		"status": successStatus,
	})
}

// routeOf devolve o padrão de rota do chi; o path cru pode conter CPF e não vai para o log.
func routeOf(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

// RegisterCustomerHandler lida com POST /v1/customers.
func (h *Handler) RegisterCustomerHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, r, nil, apperror.NewIllegalArgumentError("Invalid request body"), http.StatusCreated)
		return
	}

	customer, err := h.Service.RegisterCustomer(r.Context(), req.Name, req.Email, req.CPF)
	if err != nil {
		if apperror.KindOf(err) != apperror.KindInternal {
			metrics.RecordRejectedRegistration(string(apperror.KindOf(err)))
		}
		h.respond(w, r, nil, err, http.StatusCreated)
		return
	}

	metrics.RecordRegistration()
	h.publishRegistered(r.Context(), customer)

	h.respond(w, r, toResponse(customer), nil, http.StatusCreated)
}

// publishRegistered é best effort: o cadastro já foi persistido e não é desfeito por falha no broker.
func (h *Handler) publishRegistered(ctx context.Context, customer domain.Customer) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := h.Publisher.PublishCustomerRegistered(ctx, events.NewCustomerRegistered(customer, time.Now())); err != nil {
		metrics.RecordEventPublishError(events.CustomerRegisteredEvent)
		h.Logger.Warn("Falha ao publicar evento de cadastro.", map[string]interface{}{
			"customer_id": customer.ID().String(),
			"error":       err.Error(),
		})
	}
}

// GetCustomerByIDHandler lida com GET /v1/customers/{id}.
func (h *Handler) GetCustomerByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respond(w, r, nil, apperror.NewIllegalArgumentError("Invalid customer ID"), http.StatusOK)
		return
	}

	customer, err := h.Service.FindCustomerByID(r.Context(), id)
	if err != nil {
		h.respond(w, r, nil, err, http.StatusOK)
		return
	}
	h.respond(w, r, toResponse(customer), nil, http.StatusOK)
}

// GetCustomerByCPFHandler lida com GET /v1/customers/cpf/{cpf}.
func (h *Handler) GetCustomerByCPFHandler(w http.ResponseWriter, r *http.Request) {
	customer, err := h.Service.FindCustomerByCPF(r.Context(), chi.URLParam(r, "cpf"))
	if err != nil {
		h.respond(w, r, nil, err, http.StatusOK)
		return
	}
	h.respond(w, r, toResponse(customer), nil, http.StatusOK)
}

// ListCustomersHandler lida com GET /v1/customers.
// Com autenticação ativa, registra qual operador pediu a listagem.
func (h *Handler) ListCustomersHandler(w http.ResponseWriter, r *http.Request) {
	if staff, ok := middleware.GetStaffClaimsFromContext(r.Context()); ok {
		h.Logger.Info("Listagem completa de clientes solicitada.", map[string]interface{}{"staff": staff.Subject})
	}

	customers, err := h.Service.FindCustomerAll(r.Context())
	if err != nil {
		h.respond(w, r, nil, err, http.StatusOK)
		return
	}
	h.respond(w, r, toResponseList(customers), nil, http.StatusOK)
}
