// Package localdb opens the client's SQLite database and brings its schema up
// to date with the embedded goose migrations.
package localdb

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/gophnotes/internal/client/migrations"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the configured data dir.
const FileName = "session.db"

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite database at dsn and runs
// migrations. A dsn that looks like a file path gets its parent directory
// created with 0700 permissions, since it will hold the bearer token.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if dir := filepath.Dir(dsn); dir != "." && dsn != ":memory:" {
		if _, err := filex.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
