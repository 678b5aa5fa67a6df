package token_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocustomer/internal/pkg/token"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := token.NewService("segredo-de-teste", time.Hour)

	raw, err := svc.GenerateToken("ops@loja", token.RoleStaff)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "ops@loja", claims.Subject)
	assert.Equal(t, token.RoleStaff, claims.Role)
	assert.Equal(t, token.Issuer, claims.Issuer)
}

func TestGenerateToken_EmptySubject(t *testing.T) {
	_, err := token.NewService("segredo", time.Hour).GenerateToken("", token.RoleStaff)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := token.NewService("segredo", -time.Minute)

	raw, err := svc.GenerateToken("ops", token.RoleStaff)
	require.NoError(t, err)

	_, err = svc.ValidateToken(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	raw, err := token.NewService("segredo-a", time.Hour).GenerateToken("ops", token.RoleStaff)
	require.NoError(t, err)

	_, err = token.NewService("segredo-b", time.Hour).ValidateToken(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateToken_ForeignIssuer(t *testing.T) {
	claims := token.CustomClaims{
		Role: token.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "outro-servico",
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)

	_, err = token.NewService("segredo", time.Hour).ValidateToken(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := token.NewService("segredo", time.Hour).ValidateToken("nao.e.jwt")
	assert.Error(t, err)
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := token.CustomClaims{
		Role: token.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    token.Issuer,
			Subject:   "ops",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)

	_, err = token.NewService("segredo", time.Hour).ValidateToken(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestCustomClaims_HasRole(t *testing.T) {
	var nilClaims *token.CustomClaims
	assert.False(t, nilClaims.HasRole(token.RoleStaff))
	assert.True(t, (&token.CustomClaims{Role: token.RoleStaff}).HasRole(token.RoleStaff))
	assert.False(t, (&token.CustomClaims{Role: "viewer"}).HasRole(token.RoleStaff))
}
