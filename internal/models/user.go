// Package models holds the plain records the client works with: the
// authenticated user, uploaded documents and their chat messages.
package models

// User is the authenticated account as returned by the backend on
// signup/login. A JSON copy is persisted locally as session proof.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
