package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docuquery/internal/api"
	"docuquery/internal/common"
	"docuquery/internal/logging"
	"docuquery/internal/models"
	"docuquery/internal/repositories/messages"
)

// apologyText is the synthetic reply appended when an exchange fails.
const apologyText = "Sorry, I couldn't process your question. Please try again."

// ChatSession manages one document's message timeline across load, send and
// receive. Exchanges are processed one at a time: a send while another is
// pending is rejected, which is what guarantees append-only ordering.
type ChatSession struct {
	api  api.Client
	repo messages.Repository
	docs *DocumentStore
	log  logging.Logger

	docID   int64
	docName string

	mu       sync.Mutex
	list     []models.Message
	pending  bool
	hydrated bool
	lastErr  error
}

// NewChatSession binds a session to one document. docs may be nil when no
// collection store is in play (tests); then edit results are not mirrored.
func NewChatSession(apiClient api.Client, repo messages.Repository, docs *DocumentStore, log logging.Logger, doc *models.Document) *ChatSession {
	return &ChatSession{
		api:     apiClient,
		repo:    repo,
		docs:    docs,
		log:     log,
		docID:   doc.ID,
		docName: doc.Name,
		list:    append([]models.Message(nil), doc.Messages...),
	}
}

// Load hydrates the timeline from the backend on first open. It runs only
// when the local list is empty and only once per session. When the backend
// is unreachable the cached local copy is used instead.
func (s *ChatSession) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.hydrated || len(s.list) > 0 {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	records, err := s.api.FetchDocumentMessages(ctx, s.docID)
	if err != nil {
		s.log.Warn(ctx, "failed to load message history, using local cache", "doc_id", s.docID, "err", err)
		cached, cacheErr := s.repo.GetByDocument(ctx, s.docID)
		if cacheErr != nil {
			return fmt.Errorf("load messages: %w", err)
		}
		s.adopt(cached)
		return nil
	}

	loaded := make([]models.Message, 0, len(records))
	for _, rec := range records {
		loaded = append(loaded, models.Message{
			ID:        strconv.FormatInt(rec.ID, 10),
			Content:   rec.Content,
			Timestamp: rec.Timestamp,
			IsUser:    rec.IsUser,
			SourcePDF: s.docName,
		})
	}

	if err := s.repo.ReplaceAll(ctx, s.docID, loaded); err != nil {
		s.log.Warn(ctx, "failed to cache message history", "doc_id", s.docID, "err", err)
	}

	s.adopt(loaded)
	return nil
}

func (s *ChatSession) adopt(msgs []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated && len(s.list) == 0 {
		s.list = msgs
	}
	s.hydrated = true
	s.syncDocumentLocked()
}

// Send runs one exchange: the question is appended immediately (optimistic),
// then asked; the resolution appends either the AI answer or a local
// apology message flagged Failed. Failed exchanges also record the cause,
// retrievable via LastError, so failures stay distinguishable from genuine
// answers. Send returns nil for a failed exchange — the failure is part of
// the timeline — and non-nil only for invalid input or a pending exchange.
func (s *ChatSession) Send(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if err := validateQuestion(question); err != nil {
		return err
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return common.ErrExchangePending
	}
	s.pending = true
	s.lastErr = nil

	userMsg := models.Message{
		ID:        uuid.NewString(),
		Content:   question,
		Timestamp: now(),
		IsUser:    true,
		SourcePDF: s.docName,
	}
	s.list = append(s.list, userMsg)
	s.mu.Unlock()

	s.persist(ctx, &userMsg)

	answer, askErr := s.api.AskQuestion(ctx, s.docID, question)

	var reply models.Message
	if askErr != nil {
		s.log.Error(ctx, "question failed", "doc_id", s.docID, "err", askErr)
		reply = models.Message{
			ID:        uuid.NewString(),
			Content:   apologyText,
			Timestamp: now(),
			SourcePDF: s.docName,
			Failed:    true,
		}
	} else {
		reply = models.Message{
			ID:        uuid.NewString(),
			Content:   answer.Answer,
			Timestamp: now(),
			SourcePDF: s.docName,
		}
		if answer.IsEdit && answer.EditedPDFURL != "" {
			reply.EditedPDFURL = answer.EditedPDFURL
			if s.docs != nil {
				if err := s.docs.SetEditedVersion(ctx, s.docID, answer.EditedPDFURL); err != nil {
					s.log.Warn(ctx, "failed to record edited version", "doc_id", s.docID, "err", err)
				}
			}
		}
		s.persist(ctx, &reply)
	}

	s.mu.Lock()
	s.list = append(s.list, reply)
	s.pending = false
	s.lastErr = askErr
	s.syncDocumentLocked()
	s.mu.Unlock()

	return nil
}

// persist saves one message to the backend and mirrors it into the local
// cache. Persistence failures are logged, not fatal: the timeline already
// holds the message and the exchange outcome is decided by the ask call.
func (s *ChatSession) persist(ctx context.Context, msg *models.Message) {
	if _, err := s.api.SaveMessage(ctx, s.docID, msg.Content, msg.IsUser); err != nil {
		s.log.Warn(ctx, "failed to persist message", "doc_id", s.docID, "err", err)
	}
	if err := s.repo.Append(ctx, s.docID, msg); err != nil {
		s.log.Warn(ctx, "failed to cache message", "doc_id", s.docID, "err", err)
	}
}

func (s *ChatSession) syncDocumentLocked() {
	if s.docs != nil {
		s.docs.SetMessages(s.docID, s.list)
	}
}

// Messages returns a copy of the timeline.
func (s *ChatSession) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.list...)
}

// Pending reports whether an exchange is in flight.
func (s *ChatSession) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastError returns the cause of the most recent failed exchange, or nil
// after a successful one.
func (s *ChatSession) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func validateQuestion(q string) error {
	if err := validation.Validate(q, validation.Required, validation.Length(3, 2000)); err != nil {
		return fmt.Errorf("question: %w", err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
