// Command migrate aplica as migrations do schema de clientes com o goose.
//
//	go run ./cmd/migrate            # up
//	go run ./cmd/migrate status
//	go run ./cmd/migrate -dir ./migrations down
package main

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"gocustomer/config"
	"gocustomer/internal/pkg/database"
	"gocustomer/internal/pkg/logger"
	"gocustomer/migrations"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "", "diretório das migrations (vazio usa as embutidas no binário)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Configuração inválida.", err)
	}
	appLog := logger.NewLogger(cfg.LogLevel)

	command, args := "up", []string(nil)
	if flag.NArg() > 0 {
		command, args = flag.Arg(0), flag.Args()[1:]
	}

	if err := run(cfg, *dir, command, args); err != nil {
		appLog.Fatal("Migração falhou.", err)
	}
	appLog.Info("Migração concluída.", map[string]interface{}{"command": command})
}

func run(cfg *config.Config, dir, command string, args []string) error {
	if !cfg.UsesPostgres() {
		return fmt.Errorf("STORAGE_DRIVER=%s não tem schema para migrar", cfg.StorageDriver)
	}

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrate(db, dir, command, args)
}

// migrate roda o comando do goose. dir vazio usa as migrations embutidas no binário.
func migrate(db *sql.DB, dir, command string, args []string) error {
	if dir == "" {
		goose.SetBaseFS(migrations.FS)
		dir = "."
	} else {
		goose.SetBaseFS(nil)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Run(command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
