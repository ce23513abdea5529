// Package session holds the client-side analysis workflow state machines: one
// for file uploads, one for URL scans. A session owns the selected input, the
// in-flight status, the last result, and the last error; results are immutable
// once stored and a new submission replaces the prior result wholesale.
package session

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	"github.com/dfir-analyzer/dfirctl/internal/hash"
	sharederrors "github.com/dfir-analyzer/dfirctl/pkg/shared/errors"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/files"
)

// Status is the workflow state. Idle -> Uploading -> {Succeeded, Failed} ->
// Idle via Reset.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Validation messages surfaced before any network call.
const (
	msgNoFileSelected = "Please choose a file to analyze."
	msgUploadInFlight = "An analysis is already in progress."
)

// File is a selected input: name, size, and an accessor for its raw bytes.
// Open may be called more than once (upload and local digest are separate
// reads).
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// FileFromPath builds a File handle for a path on disk.
func FileFromPath(path string) (File, error) {
	name, err := files.GetValidatedFileName(path)
	if err != nil {
		return File{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	return File{
		Name: name,
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// Analyzer is the slice of the API client the upload session needs.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, filename string, content io.Reader) (*api.AnalysisResult, error)
}

// Session is the upload-analyze state machine. At most one upload is in
// flight at a time; a second Submit while uploading is rejected without
// touching the analyzer.
type Session struct {
	mu       sync.Mutex
	analyzer Analyzer
	logger   hclog.Logger

	status      Status
	file        *File
	result      *api.AnalysisResult
	lastError   string
	localSHA256 string
	digestMatch *bool
}

// New creates an idle session bound to the given analyzer.
func New(analyzer Analyzer, logger hclog.Logger) *Session {
	return &Session{
		analyzer: analyzer,
		logger:   logger,
		status:   StatusIdle,
	}
}

// SelectFile stages a file for analysis, clearing any prior result and error.
// Selection is rejected while an upload is in flight.
func (s *Session) SelectFile(file File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusUploading {
		return sharederrors.NewValidationError(msgUploadInFlight)
	}

	s.file = &file
	s.result = nil
	s.lastError = ""
	s.localSHA256 = ""
	s.digestMatch = nil
	s.status = StatusIdle
	return nil
}

// Submit uploads the staged file and stores the outcome. It requires a
// selected file and no in-flight upload; validation failures issue zero
// network calls.
func (s *Session) Submit(ctx context.Context) (*api.AnalysisResult, error) {
	s.mu.Lock()
	if s.status == StatusUploading {
		s.mu.Unlock()
		return nil, sharederrors.NewValidationError(msgUploadInFlight)
	}
	if s.file == nil {
		s.mu.Unlock()
		return nil, sharederrors.NewValidationError(msgNoFileSelected)
	}
	file := *s.file
	s.status = StatusUploading
	s.result = nil
	s.lastError = ""
	s.localSHA256 = ""
	s.digestMatch = nil
	s.mu.Unlock()

	result, err := s.upload(ctx, file)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.lastError = err.Error()
		return nil, err
	}

	s.status = StatusSucceeded
	s.result = result
	s.verifyDigest(file, result)
	return result, nil
}

// upload performs the network call outside the session lock.
func (s *Session) upload(ctx context.Context, file File) (*api.AnalysisResult, error) {
	content, err := file.Open()
	if err != nil {
		return nil, sharederrors.NewValidationError(err.Error())
	}
	defer content.Close()

	return s.analyzer.AnalyzeFile(ctx, file.Name, content)
}

// verifyDigest recomputes the digest locally and compares it against the
// server-returned one. A mismatch means corruption in transit or a tampering
// server; it is logged and exposed, not fatal. Must be called with the lock
// held.
func (s *Session) verifyDigest(file File, result *api.AnalysisResult) {
	if result.SHA256 == "" {
		return
	}

	content, err := file.Open()
	if err != nil {
		s.logger.Warn("cannot reopen file for digest verification", "file", file.Name, "error", err)
		return
	}
	defer content.Close()

	local, err := hash.Sum(content)
	if err != nil {
		s.logger.Warn("local digest computation failed", "file", file.Name, "error", err)
		return
	}

	s.localSHA256 = local
	match := local == result.SHA256
	s.digestMatch = &match
	if !match {
		s.logger.Warn("digest mismatch between client and server",
			"file", file.Name, "local", local, "server", result.SHA256)
	}
}

// Reset returns the session to idle from any state, clearing file, result,
// and error.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
	s.file = nil
	s.result = nil
	s.lastError = ""
	s.localSHA256 = ""
	s.digestMatch = nil
}

// Status returns the current workflow state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SelectedFile returns the staged file, or nil.
func (s *Session) SelectedFile() *File {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	file := *s.file
	return &file
}

// Result returns the last analysis result, or nil.
func (s *Session) Result() *api.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// LastError returns the stored failure message, empty when none.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// LocalSHA256 returns the locally recomputed digest, empty until a successful
// submission has been verified.
func (s *Session) LocalSHA256() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localSHA256
}

// DigestMatch reports whether the local digest matched the server one.
// checked is false when verification has not run.
func (s *Session) DigestMatch() (matched, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.digestMatch == nil {
		return false, false
	}
	return *s.digestMatch, true
}
