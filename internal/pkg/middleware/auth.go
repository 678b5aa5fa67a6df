package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	apperror "gocustomer/internal/errors"
	"gocustomer/internal/pkg/response"
	"gocustomer/internal/pkg/token"
)

// ContextKey tipa as chaves que este pacote grava no contexto da requisição.
type ContextKey int

const (
	StaffClaimsKey ContextKey = iota
)

// StaffClaims representa o operador autenticado extraído do token JWT.
type StaffClaims struct {
	Subject string
	Role    string
}

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// RequireRole valida o bearer token e exige uma das roles informadas.
// Sem token ou com token inválido responde 401; role fora da lista responde 403.
func RequireRole(validator TokenValidator, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(tokenString) == "" {
				response.Error(w, apperror.NewUnauthorizedError("Missing or malformed bearer token"))
				return
			}

			// 2. Validar o Token
			claims, err := validator.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				response.Error(w, apperror.NewUnauthorizedError("Invalid or expired token"))
				return
			}

			// 3. Verificar Permissão
			if !slices.ContainsFunc(roles, claims.HasRole) {
				response.Error(w, apperror.NewForbiddenError("Insufficient role"))
				return
			}

			// 4. Anexar Claims ao Contexto
			ctx := context.WithValue(r.Context(), StaffClaimsKey, StaffClaims{
				Subject: claims.Subject,
				Role:    claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetStaffClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetStaffClaimsFromContext(ctx context.Context) (StaffClaims, bool) {
	claims, ok := ctx.Value(StaffClaimsKey).(StaffClaims)
	return claims, ok
}
