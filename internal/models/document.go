package models

// Document is a user-uploaded PDF plus client-side metadata. Starred and
// Folder are client-owned; they are kept in the local cache so they survive
// a refetch of the backend list.
type Document struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FilePath      string `json:"file_path"`
	Size          int64  `json:"size,omitempty"`
	PageCount     int    `json:"page_count"`
	Starred       bool   `json:"starred"`
	Folder        string `json:"folder"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	EditedVersion string `json:"edited_version,omitempty"`

	// Messages is the ordered chat history, chronological, append-only.
	Messages []Message `json:"messages,omitempty"`
}
