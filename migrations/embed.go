// Package migrations embeds SQL migration files into the binary.
//
// Hearth Core runs migrations at startup without needing the SQL files
// on the filesystem; they are compiled into the executable.
package migrations

import (
	"embed"

	"github.com/hearthhome/hearth-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // files sit at the root of the embedded FS
}
