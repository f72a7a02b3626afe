// Package store contains the client-side state stores: the auth session,
// the document collection, and per-document chat sessions. Stores are the
// single writers of their state; consumers read through accessor methods.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"

	"docuquery/internal/api"
	"docuquery/internal/common"
	"docuquery/internal/logging"
	"docuquery/internal/models"
	"docuquery/internal/repositories/localdata"
)

// AuthStore is the single source of truth for "who is logged in", backed by
// the persisted token/user pair in the local key/value store.
type AuthStore struct {
	api   api.Client
	local localdata.Repository
	log   logging.Logger

	mu    sync.RWMutex
	user  *models.User
	token string
}

func NewAuthStore(apiClient api.Client, local localdata.Repository, log logging.Logger) *AuthStore {
	return &AuthStore{api: apiClient, local: local, log: log}
}

// Init restores the session from the persisted token and user record.
// A missing pair, an unparsable user record, or an already-expired token
// all yield an unauthenticated start with the stale keys wiped — never an
// error that would block startup.
func (s *AuthStore) Init(ctx context.Context) error {
	token, err := s.local.Get(ctx, common.LocalKeyToken)
	if err != nil {
		return fmt.Errorf("read persisted token: %w", err)
	}
	userData, err := s.local.Get(ctx, common.LocalKeyUser)
	if err != nil {
		return fmt.Errorf("read persisted user: %w", err)
	}

	if len(token) == 0 || len(userData) == 0 {
		return s.wipe(ctx)
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		s.log.Warn(ctx, "persisted user record is unreadable, clearing session", "err", err)
		return s.wipe(ctx)
	}

	if tokenExpired(string(token)) {
		s.log.Info(ctx, "persisted token has expired, clearing session")
		return s.wipe(ctx)
	}

	s.mu.Lock()
	s.user = &user
	s.token = string(token)
	s.mu.Unlock()
	return nil
}

// Login authenticates and persists the returned session. On failure no
// state changes, so a form can surface the error and retry.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return s.storeSession(ctx, resp)
}

// Signup creates an account and persists the returned session.
func (s *AuthStore) Signup(ctx context.Context, name, email, password string) error {
	if err := validation.Validate(name, validation.Required, validation.Length(1, 100)); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	resp, err := s.api.Signup(ctx, name, email, password)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return s.storeSession(ctx, resp)
}

// Logout clears both in-memory and persisted state. Calling it while
// already logged out is a no-op; no network call is involved.
func (s *AuthStore) Logout(ctx context.Context) error {
	return s.wipe(ctx)
}

// HandleUnauthorized is the global 401 hook: any unauthorized backend
// response invalidates the session, independent of which call triggered it.
func (s *AuthStore) HandleUnauthorized() {
	ctx := context.Background()
	s.log.Warn(ctx, "backend returned 401, clearing session")
	if err := s.wipe(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session", "err", err)
	}
}

// Token returns the current bearer token, or "" when logged out.
// It is the api.Client token source.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *AuthStore) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *AuthStore) storeSession(ctx context.Context, resp *api.AuthResponse) error {
	userData, err := json.Marshal(resp.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.local.Set(ctx, common.LocalKeyToken, []byte(resp.AccessToken)); err != nil {
		return err
	}
	if err := s.local.Set(ctx, common.LocalKeyUser, userData); err != nil {
		return err
	}

	s.mu.Lock()
	user := resp.User
	s.user = &user
	s.token = resp.AccessToken
	s.mu.Unlock()
	return nil
}

func (s *AuthStore) wipe(ctx context.Context) error {
	if err := s.local.Delete(ctx, common.LocalKeyToken); err != nil {
		return err
	}
	if err := s.local.Delete(ctx, common.LocalKeyUser); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	return nil
}

func validateCredentials(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required, validation.Length(8, 72)),
	}.Filter()
}

// tokenExpired decodes the JWT claims without verifying the signature
// (verification is the backend's job) and reports whether exp has passed.
// Tokens that are not JWTs or carry no exp claim are treated as live.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
