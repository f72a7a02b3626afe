package store

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"docuquery/internal/api"
	"docuquery/internal/common"
	"docuquery/internal/logging"
	"docuquery/internal/models"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ---- fake API client ----

// fakeAPI implements api.Client with canned results. Per-call hooks
// (FetchDocumentsFn, AskFn) take precedence over the canned fields when set.
type fakeAPI struct {
	mu sync.Mutex

	LoginResp  *api.AuthResponse
	LoginErr   error
	SignupResp *api.AuthResponse
	SignupErr  error

	UploadResp *api.DocumentRecord
	UploadErr  error

	DocsResp         []api.DocumentRecord
	DocsErr          error
	FetchDocumentsFn func() ([]api.DocumentRecord, error)

	AskResp *api.Answer
	AskErr  error
	AskFn   func(documentID int64, question string) (*api.Answer, error)

	MsgsResp []api.MessageRecord
	MsgsErr  error

	SaveErr error

	// recorded arguments
	LoginCalls    int
	SignupCalls   int
	LastEmail     string
	LastPassword  string
	LastName      string
	AskCalls      int
	LastQuestion  string
	FetchMsgCalls int
	SavedContents []string
	SavedIsUser   []bool
	Downloads     []string
}

var _ api.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignupCalls++
	f.LastName, f.LastEmail, f.LastPassword = name, email, password
	return f.SignupResp, f.SignupErr
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastEmail, f.LastPassword = email, password
	return f.LoginResp, f.LoginErr
}

func (f *fakeAPI) UploadPDF(ctx context.Context, filename string, file io.Reader) (*api.DocumentRecord, error) {
	return f.UploadResp, f.UploadErr
}

func (f *fakeAPI) FetchDocuments(ctx context.Context) ([]api.DocumentRecord, error) {
	f.mu.Lock()
	fn := f.FetchDocumentsFn
	f.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return f.DocsResp, f.DocsErr
}

func (f *fakeAPI) AskQuestion(ctx context.Context, documentID int64, question string) (*api.Answer, error) {
	f.mu.Lock()
	f.AskCalls++
	f.LastQuestion = question
	fn := f.AskFn
	f.mu.Unlock()
	if fn != nil {
		return fn(documentID, question)
	}
	return f.AskResp, f.AskErr
}

func (f *fakeAPI) FetchDocumentMessages(ctx context.Context, documentID int64) ([]api.MessageRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FetchMsgCalls++
	return f.MsgsResp, f.MsgsErr
}

func (f *fakeAPI) SaveMessage(ctx context.Context, documentID int64, content string, isUser bool) (*api.MessageRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	f.SavedContents = append(f.SavedContents, content)
	f.SavedIsUser = append(f.SavedIsUser, isUser)
	return &api.MessageRecord{ID: int64(len(f.SavedContents)), Content: content, IsUser: isUser}, nil
}

func (f *fakeAPI) DownloadFile(ctx context.Context, url, dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Downloads = append(f.Downloads, url)
	return nil
}

// ---- in-memory localdata repository ----

type memLocal struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemLocal() *memLocal { return &memLocal{data: map[string][]byte{}} }

func (m *memLocal) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memLocal) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memLocal) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memLocal) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

// ---- in-memory documents repository ----

type memDocRow struct {
	doc     models.Document
	deleted bool
}

type memDocs struct {
	mu   sync.Mutex
	rows map[int64]*memDocRow
}

func newMemDocs() *memDocs { return &memDocs{rows: map[int64]*memDocRow{}} }

func (m *memDocs) Upsert(ctx context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := *doc
	if d.Folder == "" {
		d.Folder = common.DefaultFolder
	}
	if d.PageCount < 1 {
		d.PageCount = 1
	}

	if row, ok := m.rows[d.ID]; ok {
		row.doc.Name = d.Name
		row.doc.FilePath = d.FilePath
		row.doc.PageCount = d.PageCount
		row.doc.CreatedAt = d.CreatedAt
		row.doc.UpdatedAt = d.UpdatedAt
		return nil
	}
	m.rows[d.ID] = &memDocRow{doc: d}
	return nil
}

func (m *memDocs) GetAll(ctx context.Context) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Document
	for _, row := range m.rows {
		if !row.deleted {
			out = append(out, row.doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memDocs) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	d := row.doc
	return &d, nil
}

func (m *memDocs) mutate(id int64, fn func(*memDocRow)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return common.ErrNotFound
	}
	fn(row)
	return nil
}

func (m *memDocs) SetStarred(ctx context.Context, id int64, starred bool) error {
	return m.mutate(id, func(r *memDocRow) { r.doc.Starred = starred })
}

func (m *memDocs) SetFolder(ctx context.Context, id int64, folder string) error {
	return m.mutate(id, func(r *memDocRow) { r.doc.Folder = folder })
}

func (m *memDocs) SetEditedVersion(ctx context.Context, id int64, url string) error {
	return m.mutate(id, func(r *memDocRow) { r.doc.EditedVersion = url })
}

func (m *memDocs) MarkDeleted(ctx context.Context, id int64) error {
	return m.mutate(id, func(r *memDocRow) { r.deleted = true })
}

// ---- in-memory messages repository ----

type memMsgs struct {
	mu   sync.Mutex
	data map[int64][]models.Message
}

func newMemMsgs() *memMsgs { return &memMsgs{data: map[int64][]models.Message{}} }

func (m *memMsgs) Append(ctx context.Context, documentID int64, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[documentID] = append(m.data[documentID], *msg)
	return nil
}

func (m *memMsgs) GetByDocument(ctx context.Context, documentID int64) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Message(nil), m.data[documentID]...), nil
}

func (m *memMsgs) ReplaceAll(ctx context.Context, documentID int64, msgs []models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[documentID] = append([]models.Message(nil), msgs...)
	return nil
}

func (m *memMsgs) DeleteByDocument(ctx context.Context, documentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, documentID)
	return nil
}
