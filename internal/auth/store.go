// Package auth owns the persisted client credentials. Reads and writes go
// through an explicit store with a subscription mechanism instead of ambient
// global state; other dfirctl processes writing the same file are picked up
// via Reload.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-hclog"

	"github.com/dfir-analyzer/dfirctl/pkg/shared/files"
)

// Credentials are what the client persists between runs: the bearer token and
// the display name the server returned with it.
type Credentials struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// TokenClaims is the displayed subset of the access token payload. Claims are
// parsed without signature verification: the server is the only party that
// validates tokens, the client shows them.
type TokenClaims struct {
	Subject   string
	Name      string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is in the past.
func (c *TokenClaims) Expired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// Store is a file-backed credentials store. Single writer (user-triggered
// login/logout), many readers (one per outbound request).
type Store struct {
	mu     sync.RWMutex
	path   string
	creds  Credentials
	subs   map[int]func(Credentials)
	nextID int
	logger hclog.Logger
}

// NewStore opens the store at path, loading existing credentials if present.
// A missing or unreadable file means logged out, not an error.
func NewStore(path string, logger hclog.Logger) *Store {
	s := &Store{
		path:   path,
		subs:   make(map[int]func(Credentials)),
		logger: logger,
	}
	if err := s.Reload(); err != nil {
		logger.Debug("no stored credentials", "path", path, "error", err)
	}
	return s
}

// Current returns a copy of the stored credentials.
func (s *Store) Current() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// Set persists new credentials and notifies subscribers.
func (s *Store) Set(token, name string) error {
	s.mu.Lock()
	s.creds = Credentials{Token: token, Name: name}
	creds := s.creds
	s.mu.Unlock()

	if err := s.persist(creds); err != nil {
		return err
	}
	s.notify(creds)
	return nil
}

// Clear wipes credentials in memory and on disk and notifies subscribers.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file %q: %w", s.path, err)
	}
	s.notify(Credentials{})
	return nil
}

// Reload re-reads the credentials file, notifying subscribers when another
// process changed it since the last read.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("corrupt credentials file %q: %w", s.path, err)
	}

	s.mu.Lock()
	changed := creds != s.creds
	s.creds = creds
	s.mu.Unlock()

	if changed {
		s.notify(creds)
	}
	return nil
}

// Subscribe registers fn to run on every credentials change. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func(Credentials)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Claims parses the stored access token without verifying its signature.
func (s *Store) Claims() (*TokenClaims, error) {
	token := s.Token()
	if token == "" {
		return nil, fmt.Errorf("not logged in")
	}

	var claims struct {
		Name string `json:"name"`
		jwt.RegisteredClaims
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}

	parsed := &TokenClaims{
		Subject: claims.Subject,
		Name:    claims.Name,
	}
	if claims.ExpiresAt != nil {
		parsed.ExpiresAt = claims.ExpiresAt.Time
	}
	return parsed, nil
}

func (s *Store) persist(creds Credentials) error {
	if err := files.CreateFolderIfNotExists(filepath.Dir(s.path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file %q: %w", s.path, err)
	}
	return nil
}

func (s *Store) notify(creds Credentials) {
	s.mu.RLock()
	subs := make([]func(Credentials), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(creds)
	}
}
