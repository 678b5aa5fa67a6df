package domain

import (
	"strings"

	apperror "gocustomer/internal/errors"
)

// CPFLength é a quantidade de dígitos de um CPF normalizado.
const CPFLength = 11

const (
	msgCPFNull     = "CPF cannot be null"
	msgCPFLength   = "CPF must contain exactly 11 digits"
	msgCPFChecksum = "Invalid CPF checksum"
)

// StripCPF remove qualquer caractere que não seja dígito decimal (pontos, traços, espaços).
// Não valida nada: serve para consultas e para a checagem de duplicidade.
func StripCPF(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidateCPF normaliza e valida um CPF, devolvendo os 11 dígitos.
// Entrada vazia é tratada como CPF ausente.
func ValidateCPF(raw string) (string, error) {
	if raw == "" {
		return "", apperror.NewInvalidCPFError(msgCPFNull)
	}

	digits := StripCPF(raw)
	if len(digits) != CPFLength {
		return "", apperror.NewInvalidCPFError(msgCPFLength)
	}

	// Sequências repetidas (000..., 111...) fecham a conta mas não são documentos válidos.
	if allSameDigit(digits) {
		return "", apperror.NewInvalidCPFError(msgCPFChecksum)
	}

	if checkDigit(digits[:9], 10) != digits[9]-'0' || checkDigit(digits[:10], 11) != digits[10]-'0' {
		return "", apperror.NewInvalidCPFError(msgCPFChecksum)
	}

	return digits, nil
}

// IsValidCPF é o atalho booleano de ValidateCPF.
func IsValidCPF(raw string) bool {
	_, err := ValidateCPF(raw)
	return err == nil
}

// checkDigit aplica o módulo 11 com pesos decrescentes a partir de firstWeight.
func checkDigit(digits string, firstWeight int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (firstWeight - i)
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return byte(11 - remainder)
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
