package dbpkg

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// CreateSchema creates the account table if it does not exist yet.
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	var file string

	switch db.DriverName() {
	case DriverPostgres:
		file = "schema/postgres.sql"
	case DriverSQLite:
		file = "schema/sqlite.sql"
	default:
		return fmt.Errorf("unsupported database driver %q", db.DriverName())
	}

	stmt, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	if _, err := db.ExecContext(ctx, string(stmt)); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}
