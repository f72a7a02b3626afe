// Package api is the typed HTTP wrapper around the DocuQuery backend.
// It shapes requests and responses, attaches the bearer token, and invokes
// a global hook on 401 so the session can be invalidated in one place.
// No retries: every failure propagates to the caller.
package api

import (
	"context"
	"io"

	"docuquery/internal/models"
)

// AuthResponse is the session returned by signup and login.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// DocumentRecord is the backend's document shape as consumed by the client.
// Fields the backend does not provide (page count, folder, starred) are
// defaulted by the document store.
type DocumentRecord struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	UploadDate string `json:"upload_date"`
	PageCount  int    `json:"page_count,omitempty"`
}

// Answer is the response to a question. When IsEdit is set the answer
// represents a document edit and EditedPDFURL points at the modified file.
type Answer struct {
	Answer       string   `json:"answer"`
	IsEdit       bool     `json:"is_edit,omitempty"`
	EditedPDFURL string   `json:"editedPdfUrl,omitempty"`
	Changes      []string `json:"changes,omitempty"`
}

// MessageRecord is one persisted chat message as stored by the backend.
type MessageRecord struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	IsUser    bool   `json:"is_user"`
	Timestamp string `json:"timestamp"`
}

// Client describes every backend call the stores make. Implementations must
// honor context cancellation.
type Client interface {
	// Signup creates an account and returns the new session.
	Signup(ctx context.Context, name, email, password string) (*AuthResponse, error)

	// Login authenticates existing credentials.
	Login(ctx context.Context, email, password string) (*AuthResponse, error)

	// UploadPDF sends one file as multipart form data and returns the
	// backend's document record.
	UploadPDF(ctx context.Context, filename string, file io.Reader) (*DocumentRecord, error)

	// FetchDocuments lists the documents owned by the current session.
	FetchDocuments(ctx context.Context) ([]DocumentRecord, error)

	// AskQuestion runs a question against one document.
	AskQuestion(ctx context.Context, documentID int64, question string) (*Answer, error)

	// FetchDocumentMessages returns a document's message history in order.
	FetchDocumentMessages(ctx context.Context, documentID int64) ([]MessageRecord, error)

	// SaveMessage persists one chat message.
	SaveMessage(ctx context.Context, documentID int64, content string, isUser bool) (*MessageRecord, error)

	// DownloadFile streams an absolute URL (e.g. an edited-PDF URL) to a
	// local file at dest.
	DownloadFile(ctx context.Context, url, dest string) error
}
