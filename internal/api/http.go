package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

// HTTPClient calls the DocuQuery backend over HTTP with JSON bodies
// (multipart for upload).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	// tokenSource returns the current bearer token, or "" when logged out.
	tokenSource func() string

	// onUnauthorized runs once per 401 response, before the error is
	// returned to the caller.
	onUnauthorized func()
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client bound to baseURL. No request timeout is
// set initially; install one with SetTimeout or control deadlines through
// the context.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetTimeout caps the total time of every request, download included.
// Zero means no cap.
func (c *HTTPClient) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetTokenSource installs the callback providing the bearer token.
func (c *HTTPClient) SetTokenSource(fn func() string) {
	c.tokenSource = fn
}

// SetOnUnauthorized installs the global 401 hook.
func (c *HTTPClient) SetOnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *HTTPClient) addAuthHeader(req *http.Request) {
	if c.tokenSource == nil {
		return
	}
	if token := c.tokenSource(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do executes the request and decodes a JSON response into out (when out is
// non-nil). Any non-2xx status becomes an *Error; 401 additionally fires
// the onUnauthorized hook.
func (c *HTTPClient) do(req *http.Request, out any) error {
	c.addAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Detail
		if msg == "" {
			msg = errResp.Error
		}
		if msg == "" {
			msg = resp.Status
		}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	if err := c.postJSON(ctx, "/signup", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.postJSON(ctx, "/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UploadPDF(ctx context.Context, filename string, file io.Reader) (*DocumentRecord, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var doc DocumentRecord
	if err := c.do(req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) FetchDocuments(ctx context.Context) ([]DocumentRecord, error) {
	var docs []DocumentRecord
	if err := c.getJSON(ctx, "/documents", &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) AskQuestion(ctx context.Context, documentID int64, question string) (*Answer, error) {
	body := map[string]any{"id": documentID, "question": question}
	var ans Answer
	if err := c.postJSON(ctx, "/ask", body, &ans); err != nil {
		return nil, err
	}
	return &ans, nil
}

func (c *HTTPClient) FetchDocumentMessages(ctx context.Context, documentID int64) ([]MessageRecord, error) {
	var msgs []MessageRecord
	if err := c.getJSON(ctx, fmt.Sprintf("/documents/%d/messages", documentID), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *HTTPClient) SaveMessage(ctx context.Context, documentID int64, content string, isUser bool) (*MessageRecord, error) {
	body := map[string]any{"content": content, "is_user": isUser}
	var msg MessageRecord
	if err := c.postJSON(ctx, fmt.Sprintf("/documents/%d/messages", documentID), body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *HTTPClient) DownloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.addAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Message: resp.Status}
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
