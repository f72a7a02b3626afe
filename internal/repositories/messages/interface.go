// Package messages mirrors each document's chat history into the local
// cache so previously loaded conversations render without the backend.
package messages

import (
	"context"

	"docuquery/internal/models"
)

// Repository describes the local message-cache operations. Ordering is the
// insertion order of Append (or the slice order given to ReplaceAll).
type Repository interface {
	// Append stores one message at the end of the document's history.
	Append(ctx context.Context, documentID int64, msg *models.Message) error

	// GetByDocument returns the cached history for a document, in order.
	GetByDocument(ctx context.Context, documentID int64) ([]models.Message, error)

	// ReplaceAll atomically swaps the document's cached history for msgs.
	// Used when hydrating from the backend.
	ReplaceAll(ctx context.Context, documentID int64, msgs []models.Message) error

	// DeleteByDocument drops a document's cached history.
	DeleteByDocument(ctx context.Context, documentID int64) error
}
