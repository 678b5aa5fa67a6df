// Package token emite e valida os JWTs de equipe que liberam a listagem completa de clientes.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer identifica os tokens emitidos por este serviço.
const Issuer = "GoCustomer-API"

// RoleStaff é a role que libera GET /v1/customers.
const RoleStaff = "staff"

var errEmptySubject = errors.New("subject do token não pode ser vazio")

// TokenService define o contrato para manipulação de JWTs.
type TokenService interface {
	GenerateToken(subject string, role string) (string, error)
	ValidateToken(raw string) (*CustomClaims, error)
}

// CustomClaims carrega a role do operador; o operador em si vai em RegisteredClaims.Subject.
type CustomClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// HasRole informa se as claims trazem a role pedida.
func (c *CustomClaims) HasRole(role string) bool {
	return c != nil && c.Role == role
}

// Service assina e valida tokens HS256 com uma chave compartilhada.
type Service struct {
	key    []byte
	expiry time.Duration
	parser *jwt.Parser
}

func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		key:    []byte(secretKey),
		expiry: expiry,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// GenerateToken emite um token para o operador subject, válido por s.expiry.
func (s *Service) GenerateToken(subject string, role string) (string, error) {
	if subject == "" {
		return "", errEmptySubject
	}

	issuedAt := jwt.NewNumericDate(time.Now())
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  issuedAt,
			NotBefore: issuedAt,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiry)),
		},
	}).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return signed, nil
}

// ValidateToken confere algoritmo, assinatura, emissor e expiração (obrigatória).
// Os erros encapsulam as sentinelas do jwt (jwt.ErrTokenExpired etc.).
func (s *Service) ValidateToken(raw string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	if _, err := s.parser.ParseWithClaims(raw, claims, s.keyFunc); err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}
	return claims, nil
}

func (s *Service) keyFunc(*jwt.Token) (interface{}, error) {
	return s.key, nil
}
