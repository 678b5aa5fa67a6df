// Command token emite um JWT de equipe para acessar GET /v1/customers.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gocustomer/internal/pkg/token"
)

func main() {
	_ = godotenv.Load()

	subject := flag.String("sub", "", "identificação do operador (obrigatório)")
	role := flag.String("role", token.RoleStaff, "role gravada no token")
	expiry := flag.Duration("ttl", time.Hour, "validade do token")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("❌ JWT_SECRET_KEY deve ser definido para emitir tokens.")
	}
	if *subject == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := token.NewService(secret, *expiry).GenerateToken(*subject, *role)
	if err != nil {
		log.Fatalf("❌ Falha ao emitir token: %v", err)
	}
	fmt.Println(raw)
}
