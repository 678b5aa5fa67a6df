package customer

import "gocustomer/internal/domain"

// RegisterRequest é o corpo de POST /v1/customers.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
}

// Response é a representação pública de um cliente.
type Response struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
}

func toResponse(c domain.Customer) Response {
	return Response{
		ID:    c.ID().String(),
		Name:  c.Name(),
		Email: c.Email(),
		CPF:   c.CPF(),
	}
}

func toResponseList(customers []domain.Customer) []Response {
	out := make([]Response, 0, len(customers))
	for _, c := range customers {
		out = append(out, toResponse(c))
	}
	return out
}
