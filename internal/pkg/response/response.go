// Package response padroniza os corpos JSON de sucesso e de erro da API.
package response

import (
	"encoding/json"
	"net/http"
	"time"

	apperror "gocustomer/internal/errors"
)

// ErrorBody é o formato de erro devolvido por todos os endpoints.
type ErrorBody struct {
	Status    int    `json:"status"`
	Category  string `json:"category"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// now é substituível nos testes.
var now = time.Now

// JSON escreve data com o status informado. data nil gera corpo vazio.
func JSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

// Error traduz err via apperror.MapToHTTPStatus, escreve o corpo padronizado e devolve o status usado.
func Error(w http.ResponseWriter, err error) int {
	status, category, message := apperror.MapToHTTPStatus(err)
	_ = JSON(w, status, ErrorBody{
		Status:    status,
		Category:  category,
		Error:     message,
		Timestamp: now().UTC().Format(time.RFC3339),
	})
	return status
}
