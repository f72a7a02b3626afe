package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"docuquery/internal/api"
	"docuquery/internal/common"
	"docuquery/internal/logging"
	"docuquery/internal/models"
	"docuquery/internal/repositories/documents"
	"docuquery/internal/repositories/messages"
)

// DocumentStore caches the user's documents. The backend list is the source
// of truth for server-owned fields; client-owned metadata (star, folder,
// delete tombstone) lives in the local repository and is overlaid onto
// every fetch result, so those mutations survive a refetch.
type DocumentStore struct {
	api  api.Client
	repo documents.Repository
	msgs messages.Repository
	log  logging.Logger

	mu      sync.RWMutex
	docs    []models.Document
	loading bool

	// fetchSeq tags each fetch; only the latest tag may apply its result,
	// so a slow stale response never overwrites a newer one.
	fetchSeq uint64
}

func NewDocumentStore(apiClient api.Client, repo documents.Repository, msgs messages.Repository, log logging.Logger) *DocumentStore {
	return &DocumentStore{api: apiClient, repo: repo, msgs: msgs, log: log}
}

// FetchUserDocuments requests the full list from the backend, reconciles it
// with the local metadata overlay, and replaces the in-memory collection.
// The collection after a successful fetch contains exactly the fetched
// documents (minus local tombstones) — entries absent from the response are
// dropped, never merged in.
func (s *DocumentStore) FetchUserDocuments(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	token := s.fetchSeq
	s.loading = true
	s.mu.Unlock()

	records, err := s.api.FetchDocuments(ctx)
	if err != nil {
		s.finishFetch(token, nil)
		return fmt.Errorf("fetch documents: %w", err)
	}

	fetched := make(map[int64]struct{}, len(records))
	for i := range records {
		doc := mapRecord(&records[i])
		if err := s.repo.Upsert(ctx, doc); err != nil {
			s.finishFetch(token, nil)
			return fmt.Errorf("cache document %d: %w", doc.ID, err)
		}
		fetched[doc.ID] = struct{}{}
	}

	cached, err := s.repo.GetAll(ctx)
	if err != nil {
		s.finishFetch(token, nil)
		return fmt.Errorf("read document cache: %w", err)
	}

	merged := make([]models.Document, 0, len(records))
	for _, d := range cached {
		if _, ok := fetched[d.ID]; ok {
			merged = append(merged, d)
		}
	}

	if !s.finishFetch(token, merged) {
		s.log.Debug(ctx, "discarding stale document fetch", "token", token)
	}
	return nil
}

// finishFetch applies the result if token is still the latest issued.
// Reports whether the result was applied. A stale fetch leaves the loading
// flag to the newer fetch that owns it.
func (s *DocumentStore) finishFetch(token uint64, merged []models.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.fetchSeq {
		return false
	}
	s.loading = false
	if merged != nil {
		s.docs = merged
	}
	return true
}

// Add prepends a freshly uploaded document to the collection and caches it.
// An id already present replaces its entry in place, so ids stay unique.
func (s *DocumentStore) Add(ctx context.Context, doc *models.Document) error {
	if err := s.repo.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("cache document %d: %w", doc.ID, err)
	}
	cached, err := s.repo.GetByID(ctx, doc.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].ID == cached.ID {
			s.docs[i] = *cached
			return nil
		}
	}
	s.docs = append([]models.Document{*cached}, s.docs...)
	return nil
}

// GetByID returns a copy of the document, or common.ErrNotFound. It never
// panics on an unknown id; callers render their own not-found state.
func (s *DocumentStore) GetByID(id int64) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.docs {
		if s.docs[i].ID == id {
			d := s.docs[i]
			return &d, nil
		}
	}
	return nil, common.ErrNotFound
}

// Update shallow-merges changes into the matching document via apply.
// In-memory only; persistent metadata changes go through the dedicated
// mutators below.
func (s *DocumentStore) Update(id int64, apply func(*models.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].ID == id {
			apply(&s.docs[i])
			return nil
		}
	}
	return common.ErrNotFound
}

// ToggleStar flips the star flag, persisting the new value before applying
// it in memory, and returns the new value.
func (s *DocumentStore) ToggleStar(ctx context.Context, id int64) (bool, error) {
	doc, err := s.GetByID(id)
	if err != nil {
		return false, err
	}
	starred := !doc.Starred

	if err := s.repo.SetStarred(ctx, id, starred); err != nil {
		return false, fmt.Errorf("persist star: %w", err)
	}
	_ = s.Update(id, func(d *models.Document) { d.Starred = starred })
	return starred, nil
}

// MoveToFolder assigns the document to folder.
func (s *DocumentStore) MoveToFolder(ctx context.Context, id int64, folder string) error {
	if folder == "" {
		folder = common.DefaultFolder
	}
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.SetFolder(ctx, id, folder); err != nil {
		return fmt.Errorf("persist folder: %w", err)
	}
	return s.Update(id, func(d *models.Document) { d.Folder = folder })
}

// Delete tombstones the document locally and drops it from the collection.
// The backend contract has no delete endpoint, so the tombstone is what
// keeps the document hidden across refetches.
func (s *DocumentStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.MarkDeleted(ctx, id); err != nil {
		return fmt.Errorf("persist delete: %w", err)
	}
	// The tombstone already hides the document; a leftover history is
	// only wasted space, so a cleanup failure is not fatal.
	if err := s.msgs.DeleteByDocument(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to drop cached messages", "doc_id", id, "err", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			break
		}
	}
	return nil
}

// SetEditedVersion records the URL of the latest backend-edited PDF.
func (s *DocumentStore) SetEditedVersion(ctx context.Context, id int64, url string) error {
	if err := s.repo.SetEditedVersion(ctx, id, url); err != nil {
		return fmt.Errorf("persist edited version: %w", err)
	}
	return s.Update(id, func(d *models.Document) { d.EditedVersion = url })
}

// SetMessages attaches a chat history snapshot to the in-memory document.
func (s *DocumentStore) SetMessages(id int64, msgs []models.Message) {
	_ = s.Update(id, func(d *models.Document) {
		d.Messages = append([]models.Message(nil), msgs...)
	})
}

// Documents returns a copy of the collection.
func (s *DocumentStore) Documents() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Document(nil), s.docs...)
}

// Loading reports whether a fetch is in flight.
func (s *DocumentStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Recent returns up to n documents, most recently updated first.
func (s *DocumentStore) Recent(n int) []models.Document {
	docs := s.Documents()
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UpdatedAt > docs[j].UpdatedAt
	})
	if n > 0 && len(docs) > n {
		docs = docs[:n]
	}
	return docs
}

// Starred returns the starred documents.
func (s *DocumentStore) Starred() []models.Document {
	var out []models.Document
	for _, d := range s.Documents() {
		if d.Starred {
			out = append(out, d)
		}
	}
	return out
}

// Folders returns the distinct folder labels in use, sorted.
func (s *DocumentStore) Folders() []string {
	seen := map[string]struct{}{}
	for _, d := range s.Documents() {
		seen[d.Folder] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ByFolder returns the documents with the given folder label.
func (s *DocumentStore) ByFolder(folder string) []models.Document {
	var out []models.Document
	for _, d := range s.Documents() {
		if d.Folder == folder {
			out = append(out, d)
		}
	}
	return out
}

// mapRecord converts a backend document record to the client shape.
// Missing fields get defaults: page count 1, the default folder, unstarred.
func mapRecord(rec *api.DocumentRecord) *models.Document {
	pageCount := rec.PageCount
	if pageCount < 1 {
		pageCount = 1
	}
	return &models.Document{
		ID:        rec.ID,
		Name:      rec.Filename,
		FilePath:  rec.FilePath,
		PageCount: pageCount,
		Folder:    common.DefaultFolder,
		CreatedAt: rec.UploadDate,
		UpdatedAt: rec.UploadDate,
	}
}
