package domain

import (
	"regexp"
	"strings"

	apperror "gocustomer/internal/errors"
)

// emailPattern é aplicado sobre o email já em minúsculas: parte local, um único "@"
// e um domínio com pelo menos dois rótulos não vazios separados por ".".
var emailPattern = regexp.MustCompile(`^[a-z0-9._+-]+@[a-z0-9-]+(\.[a-z0-9-]+)+$`)

// NormalizeEmail devolve o email em minúsculas ou "" quando nenhum email foi informado.
func NormalizeEmail(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	email := strings.ToLower(raw)
	if !emailPattern.MatchString(email) {
		return "", apperror.NewInvalidEmailError("Invalid email format: " + raw)
	}

	return email, nil
}
