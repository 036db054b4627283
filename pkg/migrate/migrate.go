package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
)

const DefaultDir = "pkg/migrate/migrations"

// Run executes a goose command against the contacts database. The dialect
// follows the storage driver (postgres or sqlite3).
func Run(ctx context.Context, db *sql.DB, dialect, dir, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// CreateSQLMigration writes a timestamped empty SQL migration file.
func CreateSQLMigration(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.sql", time.Now().Format("20060102150405"), name)
	path := filepath.Join(dir, filename)
	template := "-- +goose Up\n\n-- +goose Down\n"
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return "", fmt.Errorf("write migration: %w", err)
	}
	return path, nil
}

// DialectFor maps a storage driver name onto the goose dialect.
func DialectFor(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return "postgres"
}
