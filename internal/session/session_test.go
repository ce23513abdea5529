package session

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	"github.com/dfir-analyzer/dfirctl/internal/hash"
	sharederrors "github.com/dfir-analyzer/dfirctl/pkg/shared/errors"
)

// fakeAnalyzer counts invocations and can block until released to simulate an
// in-flight upload.
type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   int
	result  *api.AnalysisResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeAnalyzer) AnalyzeFile(ctx context.Context, filename string, content io.Reader) (*api.AnalysisResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
		f.started = nil
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func memFile(name string, content []byte) File {
	return File{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

func TestSubmitWithoutSelectedFile(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	s := New(analyzer, hclog.NewNullLogger())

	result, err := s.Submit(context.Background())

	assert.Nil(t, result)
	assert.EqualError(t, err, "Please choose a file to analyze.")
	assert.Equal(t, StatusIdle, s.Status())
	assert.Equal(t, 0, analyzer.callCount())
}

func TestSubmitSuccess(t *testing.T) {
	content := bytes.Repeat([]byte{0x41}, 2048)
	analyzer := &fakeAnalyzer{
		result: &api.AnalysisResult{
			OriginalFilename: "report.pdf",
			SHA256:           hash.SumBytes(content),
			RiskScore:        65,
		},
	}
	s := New(analyzer, hclog.NewNullLogger())

	require.NoError(t, s.SelectFile(memFile("report.pdf", content)))
	result, err := s.Submit(context.Background())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, StatusSucceeded, s.Status())
	assert.Equal(t, 65, result.RiskScore)
	assert.Equal(t, "report.pdf", result.OriginalFilename)
	assert.Equal(t, 1, analyzer.callCount())

	matched, checked := s.DigestMatch()
	assert.True(t, checked)
	assert.True(t, matched)
	assert.Equal(t, analyzer.result.SHA256, s.LocalSHA256())
}

func TestSubmitServerError(t *testing.T) {
	analyzer := &fakeAnalyzer{
		err: sharederrors.NewServerError(500, "file too large", "Upload failed. Try again."),
	}
	s := New(analyzer, hclog.NewNullLogger())

	require.NoError(t, s.SelectFile(memFile("huge.bin", []byte("payload"))))
	result, err := s.Submit(context.Background())

	assert.Nil(t, result)
	assert.EqualError(t, err, "file too large")
	assert.Equal(t, StatusFailed, s.Status())
	assert.Equal(t, "file too large", s.LastError())
	assert.Nil(t, s.Result())
}

func TestSubmitWhileUploading(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result:  &api.AnalysisResult{RiskScore: 10},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	started := analyzer.started
	s := New(analyzer, hclog.NewNullLogger())

	require.NoError(t, s.SelectFile(memFile("a.bin", []byte("aaa"))))

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	<-started

	// Second submission while the first is in flight must be rejected locally.
	result, err := s.Submit(context.Background())
	assert.Nil(t, result)
	assert.EqualError(t, err, "An analysis is already in progress.")
	assert.Equal(t, StatusUploading, s.Status())

	// Re-selecting a file mid-upload is rejected the same way.
	assert.EqualError(t, s.SelectFile(memFile("b.bin", []byte("bbb"))), "An analysis is already in progress.")

	close(analyzer.release)
	require.NoError(t, <-done)
	assert.Equal(t, StatusSucceeded, s.Status())
	assert.Equal(t, 1, analyzer.callCount())
}

func TestSelectFileClearsPriorOutcome(t *testing.T) {
	analyzer := &fakeAnalyzer{err: sharederrors.NewServerError(400, "unsupported type", "Upload failed. Try again.")}
	s := New(analyzer, hclog.NewNullLogger())

	require.NoError(t, s.SelectFile(memFile("bad.xyz", []byte("x"))))
	_, err := s.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StatusFailed, s.Status())

	require.NoError(t, s.SelectFile(memFile("good.pdf", []byte("y"))))
	assert.Equal(t, StatusIdle, s.Status())
	assert.Empty(t, s.LastError())
	assert.Nil(t, s.Result())
}

func TestReset(t *testing.T) {
	content := []byte("content")
	analyzer := &fakeAnalyzer{
		result: &api.AnalysisResult{SHA256: hash.SumBytes(content), RiskScore: 90},
	}
	s := New(analyzer, hclog.NewNullLogger())

	require.NoError(t, s.SelectFile(memFile("evil.exe", content)))
	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusSucceeded, s.Status())

	s.Reset()

	assert.Equal(t, StatusIdle, s.Status())
	assert.Nil(t, s.SelectedFile())
	assert.Nil(t, s.Result())
	assert.Empty(t, s.LastError())
	assert.Empty(t, s.LocalSHA256())
	_, checked := s.DigestMatch()
	assert.False(t, checked)
}

func TestDigestMismatchIsNotFatal(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &api.AnalysisResult{SHA256: "deadbeef", RiskScore: 5},
	}
	s := New(analyzer, hclog.NewNullLogger())

	require.NoError(t, s.SelectFile(memFile("doc.txt", []byte("hello"))))
	result, err := s.Submit(context.Background())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, StatusSucceeded, s.Status())

	matched, checked := s.DigestMatch()
	assert.True(t, checked)
	assert.False(t, matched)
}
