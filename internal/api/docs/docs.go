// Package docs registra a documentação Swagger da API no registry do swag,
// servida pelo http-swagger em /swagger/.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string { return swaggerJSON }

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
