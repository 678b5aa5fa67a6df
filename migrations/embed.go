// Package migrations embute os arquivos SQL do goose no binário.
package migrations

import "embed"

// FS contém as migrações na raiz ("."), prontas para goose.SetBaseFS.
//
//go:embed *.sql
var FS embed.FS
