package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do serviço de clientes.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "INVALID_CPF", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// Kind identifica o tipo de um erro para quem precisa decidir pelo tipo e não pela struct concreta.
type Kind string

const (
	KindInvalidCPF       Kind = "INVALID_CPF"
	KindInvalidEmail     Kind = "INVALID_EMAIL"
	KindIllegalArgument  Kind = "ILLEGAL_ARGUMENT"
	KindMissingID        Kind = "MISSING_ID"
	KindDomain           Kind = "DOMAIN_ERROR"
	KindNotFound         Kind = "NOT_FOUND"
	KindInternal         Kind = "INTERNAL_ERROR"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindForbidden        Kind = "FORBIDDEN"
	KindRateLimited      Kind = "RATE_LIMITED"
	KindMethodNotAllowed Kind = "METHOD_NOT_ALLOWED"
	KindUnknown          Kind = "UNKNOWN_ERROR"
)

// --- Erros de Entrada (sempre culpa de quem chama, nunca re-tentados) ---

// InvalidCPFError representa um CPF malformado ou com dígitos verificadores incorretos.
type InvalidCPFError struct {
	Msg string
}

func (e *InvalidCPFError) Error() string    { return e.Msg }
func (e *InvalidCPFError) Category() string { return string(KindInvalidCPF) }
func (e *InvalidCPFError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *InvalidCPFError) Unwrap() error    { return nil }

// NewInvalidCPFError cria um novo erro de CPF inválido.
func NewInvalidCPFError(msg string) AppError {
	return &InvalidCPFError{Msg: msg}
}

// InvalidEmailError representa um email fora do formato local@dominio.
type InvalidEmailError struct {
	Msg string
}

func (e *InvalidEmailError) Error() string    { return e.Msg }
func (e *InvalidEmailError) Category() string { return string(KindInvalidEmail) }
func (e *InvalidEmailError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *InvalidEmailError) Unwrap() error    { return nil }

// NewInvalidEmailError cria um novo erro de email inválido.
func NewInvalidEmailError(msg string) AppError {
	return &InvalidEmailError{Msg: msg}
}

// IllegalArgumentError representa um argumento obrigatório vazio ou malformado (e.g., nome em branco).
type IllegalArgumentError struct {
	Msg string
}

func (e *IllegalArgumentError) Error() string    { return e.Msg }
func (e *IllegalArgumentError) Category() string { return string(KindIllegalArgument) }
func (e *IllegalArgumentError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *IllegalArgumentError) Unwrap() error    { return nil }

// NewIllegalArgumentError cria um novo erro de argumento ilegal.
func NewIllegalArgumentError(msg string) AppError {
	return &IllegalArgumentError{Msg: msg}
}

// MissingIDError representa a ausência do identificador na construção de uma entidade.
type MissingIDError struct {
	Msg string
}

func (e *MissingIDError) Error() string    { return e.Msg }
func (e *MissingIDError) Category() string { return string(KindMissingID) }
func (e *MissingIDError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *MissingIDError) Unwrap() error    { return nil }

// NewMissingIDError cria um novo erro de ID ausente.
func NewMissingIDError(msg string) AppError {
	return &MissingIDError{Msg: msg}
}

// --- Erros de Regra de Negócio ---

// DomainError representa a violação de uma regra de negócio (e.g., CPF já cadastrado).
type DomainError struct {
	Msg string
	Err error
}

func (e *DomainError) Error() string    { return e.Msg }
func (e *DomainError) Category() string { return string(KindDomain) }
func (e *DomainError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *DomainError) Unwrap() error    { return e.Err }

// NewDomainError cria um novo erro de regra de negócio.
func NewDomainError(msg string) AppError {
	return &DomainError{Msg: msg}
}

// WrapDomainError cria um erro de regra de negócio preservando a causa original.
func WrapDomainError(msg string, err error) AppError {
	return &DomainError{Msg: msg, Err: err}
}

// NotFoundError é a especialização de DomainError para registros ausentes.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return string(KindNotFound) }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// As faz com que errors.As(err, &domainErr) também reconheça um NotFoundError.
func (e *NotFoundError) As(target interface{}) bool {
	if d, ok := target.(**DomainError); ok {
		*d = &DomainError{Msg: e.Msg}
		return true
	}
	return false
}

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// --- Erros de Acesso (middlewares) ---

// UnauthorizedError indica token ausente, malformado ou inválido.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return e.Msg }
func (e *UnauthorizedError) Category() string { return string(KindUnauthorized) }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError indica um token válido sem a role exigida.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return e.Msg }
func (e *ForbiddenError) Category() string { return string(KindForbidden) }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Unwrap() error    { return nil }

func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// RateLimitError indica que o cliente excedeu a cota da janela atual.
type RateLimitError struct {
	Msg string
}

func (e *RateLimitError) Error() string    { return e.Msg }
func (e *RateLimitError) Category() string { return string(KindRateLimited) }
func (e *RateLimitError) HTTPStatus() int  { return http.StatusTooManyRequests } // 429
func (e *RateLimitError) Unwrap() error    { return nil }

func NewRateLimitError(msg string) AppError {
	return &RateLimitError{Msg: msg}
}

// MethodNotAllowedError indica rota existente chamada com método HTTP não suportado.
type MethodNotAllowedError struct {
	Msg string
}

func (e *MethodNotAllowedError) Error() string    { return e.Msg }
func (e *MethodNotAllowedError) Category() string { return string(KindMethodNotAllowed) }
func (e *MethodNotAllowedError) HTTPStatus() int  { return http.StatusMethodNotAllowed } // 405
func (e *MethodNotAllowedError) Unwrap() error    { return nil }

func NewMethodNotAllowedError(msg string) AppError {
	return &MethodNotAllowedError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
}
func (e *InternalError) Category() string { return string(KindInternal) }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg+" (DB)", err)
}

// --- Helpers de Classificação ---

// IsDomainError informa se err é um DomainError ou uma de suas especializações (NotFoundError).
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// IsNotFound informa se err (ou algum erro da cadeia) é um NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// KindOf devolve o Kind do primeiro AppError encontrado na cadeia de err.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr AppError
	if errors.As(err, &appErr) {
		return Kind(appErr.Category())
	}
	return KindUnknown
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, a categoria e a mensagem.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			// Não expõe detalhes de infraestrutura para o cliente.
			return appErr.HTTPStatus(), appErr.Category(), "An unexpected error occurred"
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado (e.g., erro simples de pacote Go que não implementa AppError)
	return http.StatusInternalServerError, string(KindUnknown), "An unexpected error occurred"
}
