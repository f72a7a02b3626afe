// Package documents caches document metadata locally. Server-owned fields
// (name, path, timestamps) are overwritten on every fetch; client-owned
// fields (starred, folder, deleted tombstone, edited version) live only
// here and survive refetches.
package documents

import (
	"context"

	"docuquery/internal/models"
)

// Repository describes the local document-cache operations.
type Repository interface {
	// Upsert inserts the document or refreshes its server-owned columns.
	// Client-owned columns of an existing row are left untouched.
	Upsert(ctx context.Context, doc *models.Document) error

	// GetAll returns all cached documents that are not tombstoned,
	// newest first.
	GetAll(ctx context.Context) ([]models.Document, error)

	// GetByID returns one cached document, tombstoned or not.
	// Returns common.ErrNotFound when the id is unknown.
	GetByID(ctx context.Context, id int64) (*models.Document, error)

	// SetStarred flips the client-owned star flag.
	SetStarred(ctx context.Context, id int64, starred bool) error

	// SetFolder moves the document to another folder label.
	SetFolder(ctx context.Context, id int64, folder string) error

	// SetEditedVersion records the URL of the latest edited PDF.
	SetEditedVersion(ctx context.Context, id int64, url string) error

	// MarkDeleted tombstones the document so it is hidden from GetAll
	// even after the backend list is refetched.
	MarkDeleted(ctx context.Context, id int64) error
}
