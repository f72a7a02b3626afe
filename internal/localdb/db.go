// Package localdb opens the local SQLite cache and wires the repositories
// on top of it. This database is the client's browser-local-storage analog:
// session proof, preferences, and the offline copy of documents and chats.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"docuquery/internal/localdb/migrations"
	"docuquery/internal/repositories/documents"
	"docuquery/internal/repositories/localdata"
	"docuquery/internal/repositories/messages"
)

// Repositories bundles the local-cache repositories sharing one DB handle.
type Repositories struct {
	LocalData localdata.Repository
	Documents documents.Repository
	Messages  messages.Repository
	DB        *sql.DB
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the SQLite database at dsn, migrates it,
// and returns the repository set.
func Open(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return &Repositories{
		LocalData: localdata.NewSQLiteRepository(db),
		Documents: documents.NewSQLiteRepository(db),
		Messages:  messages.NewSQLiteRepository(db),
		DB:        db,
	}, nil
}

// Close closes the underlying database.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
