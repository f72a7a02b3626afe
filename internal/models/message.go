package models

// Message is one turn in a document's chat history. Content is immutable
// once appended.
type Message struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	IsUser    bool   `json:"is_user"`
	SourcePDF string `json:"source_pdf,omitempty"`
	Citations []int  `json:"citations,omitempty"`

	// EditedPDFURL is set when the AI response represents a document edit.
	EditedPDFURL string `json:"edited_pdf_url,omitempty"`

	// Failed marks a locally fabricated message standing in for a failed
	// exchange. Failed messages are never persisted to the backend, so
	// analytics and retry logic can tell them apart from genuine answers.
	Failed bool `json:"failed,omitempty"`
}
