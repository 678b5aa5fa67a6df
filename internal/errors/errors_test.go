package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gocustomer/internal/errors"
)

func TestMapToHTTPStatus_InputErrorsAreBadRequest(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category string
		message  string
	}{
		{"cpf", apperror.NewInvalidCPFError("Invalid CPF checksum"), "INVALID_CPF", "Invalid CPF checksum"},
		{"email", apperror.NewInvalidEmailError("Invalid email format: x"), "INVALID_EMAIL", "Invalid email format: x"},
		{"name", apperror.NewIllegalArgumentError("Name cannot be null or empty"), "ILLEGAL_ARGUMENT", "Name cannot be null or empty"},
		{"id", apperror.NewMissingIDError("ID cannot be null"), "MISSING_ID", "ID cannot be null"},
		{"domain", apperror.NewDomainError("Customer with CPF 11144477735 already exists"), "DOMAIN_ERROR", "Customer with CPF 11144477735 already exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, category, message := apperror.MapToHTTPStatus(tc.err)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.category, category)
			assert.Equal(t, tc.message, message)
		})
	}
}

func TestMapToHTTPStatus_NotFound(t *testing.T) {
	status, category, message := apperror.MapToHTTPStatus(apperror.NewNotFoundError("Record not found"))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", category)
	assert.Equal(t, "Record not found", message)
}

func TestMapToHTTPStatus_InternalHidesCause(t *testing.T) {
	err := apperror.NewDBError("failed to insert customer", errors.New("connection refused"))

	status, category, message := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", category)
	assert.NotContains(t, message, "connection refused")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMapToHTTPStatus_UntypedError(t *testing.T) {
	status, category, _ := apperror.MapToHTTPStatus(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "UNKNOWN_ERROR", category)
}

func TestNotFoundIsADomainError(t *testing.T) {
	err := fmt.Errorf("lookup: %w", apperror.NewNotFoundError("Record not found"))

	var domainErr *apperror.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Record not found", domainErr.Error())
	assert.True(t, apperror.IsDomainError(err))
	assert.True(t, apperror.IsNotFound(err))
}

func TestDomainErrorIsNotANotFound(t *testing.T) {
	err := apperror.NewDomainError("Customer with CPF 52998224725 already exists")

	assert.True(t, apperror.IsDomainError(err))
	assert.False(t, apperror.IsNotFound(err))
}

func TestWrapDomainErrorKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := apperror.WrapDomainError("Customer with CPF 52998224725 already exists", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Customer with CPF 52998224725 already exists", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperror.KindInvalidCPF, apperror.KindOf(apperror.NewInvalidCPFError("x")))
	assert.Equal(t, apperror.KindInvalidEmail, apperror.KindOf(apperror.NewInvalidEmailError("x")))
	assert.Equal(t, apperror.KindIllegalArgument, apperror.KindOf(apperror.NewIllegalArgumentError("x")))
	assert.Equal(t, apperror.KindMissingID, apperror.KindOf(apperror.NewMissingIDError("x")))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(fmt.Errorf("wrapped: %w", apperror.NewNotFoundError("x"))))
	assert.Equal(t, apperror.KindUnknown, apperror.KindOf(errors.New("x")))
	assert.Equal(t, apperror.Kind(""), apperror.KindOf(nil))
}

func TestMapToHTTPStatus_AccessErrors(t *testing.T) {
	tests := []struct {
		err      error
		status   int
		category string
	}{
		{apperror.NewUnauthorizedError("Missing or malformed bearer token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperror.NewForbiddenError("Staff role required"), http.StatusForbidden, "FORBIDDEN"},
		{apperror.NewRateLimitError("Rate limit exceeded"), http.StatusTooManyRequests, "RATE_LIMITED"},
		{apperror.NewMethodNotAllowedError("Method not allowed"), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		status, category, message := apperror.MapToHTTPStatus(tt.err)
		assert.Equal(t, tt.status, status)
		assert.Equal(t, tt.category, category)
		assert.Equal(t, tt.err.Error(), message)
		assert.False(t, apperror.IsDomainError(tt.err))
	}
}
