package session

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	sharederrors "github.com/dfir-analyzer/dfirctl/pkg/shared/errors"
)

const (
	msgEmptyURL      = "Please enter a URL to analyze."
	msgMissingScheme = "URL must start with http:// or https://"
	msgScanInFlight  = "A URL analysis is already in progress."
)

// ValidateURL applies the strict submission policy: the input must carry an
// explicit http:// or https:// prefix, nothing is auto-prepended. Runs before
// any network call.
func ValidateURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return sharederrors.NewValidationError(msgEmptyURL)
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return sharederrors.NewValidationError(msgMissingScheme)
	}
	return nil
}

// URLAnalyzer is the slice of the API client the URL session needs.
type URLAnalyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*api.URLAnalysisResult, error)
}

// URLSession is the URL scan state machine. Same three-state shape as the
// upload session, producing a URLAnalysisResult.
type URLSession struct {
	mu       sync.Mutex
	analyzer URLAnalyzer
	logger   hclog.Logger

	status    Status
	url       string
	result    *api.URLAnalysisResult
	lastError string
}

// NewURLSession creates an idle URL session bound to the given analyzer.
func NewURLSession(analyzer URLAnalyzer, logger hclog.Logger) *URLSession {
	return &URLSession{
		analyzer: analyzer,
		logger:   logger,
		status:   StatusIdle,
	}
}

// Submit validates raw and, when valid, scans it. Invalid input is rejected
// locally with zero network calls; a second Submit while one is in flight is
// rejected the same way.
func (s *URLSession) Submit(ctx context.Context, raw string) (*api.URLAnalysisResult, error) {
	if err := ValidateURL(raw); err != nil {
		return nil, err
	}
	url := strings.TrimSpace(raw)

	s.mu.Lock()
	if s.status == StatusUploading {
		s.mu.Unlock()
		return nil, sharederrors.NewValidationError(msgScanInFlight)
	}
	s.status = StatusUploading
	s.url = url
	s.result = nil
	s.lastError = ""
	s.mu.Unlock()

	result, err := s.analyzer.AnalyzeURL(ctx, url)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.lastError = err.Error()
		return nil, err
	}

	s.status = StatusSucceeded
	s.result = result
	return result, nil
}

// Reset returns the session to idle, clearing URL, result, and error.
func (s *URLSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	s.url = ""
	s.result = nil
	s.lastError = ""
}

// Status returns the current workflow state.
func (s *URLSession) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// URL returns the last submitted URL.
func (s *URLSession) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Result returns the last scan result, or nil.
func (s *URLSession) Result() *api.URLAnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// LastError returns the stored failure message, empty when none.
func (s *URLSession) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
