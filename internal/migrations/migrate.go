package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedded embed.FS

const sqliteDialect = "sqlite3"

// Up runs all pending embedded SQL migrations. Embedding keeps the schema
// available to tests and to the deployed binary without a migrations
// directory on disk.
func Up(db *sql.DB) error {
	goose.SetBaseFS(embedded)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
