package session

import (
	"context"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfir-analyzer/dfirctl/internal/api"
	sharederrors "github.com/dfir-analyzer/dfirctl/pkg/shared/errors"
)

type fakeURLAnalyzer struct {
	mu     sync.Mutex
	calls  int
	result *api.URLAnalysisResult
	err    error
}

func (f *fakeURLAnalyzer) AnalyzeURL(ctx context.Context, url string) (*api.URLAnalysisResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeURLAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"Valid http URL", "http://example.com", ""},
		{"Valid https URL", "https://example.com/path?q=1", ""},
		{"Surrounding whitespace", "  https://example.com  ", ""},
		{"Empty input", "", "Please enter a URL to analyze."},
		{"Whitespace only", "   ", "Please enter a URL to analyze."},
		{"Missing scheme", "not-a-url", "URL must start with http:// or https://"},
		{"Bare hostname", "example.com", "URL must start with http:// or https://"},
		{"Unsupported scheme", "ftp://example.com", "URL must start with http:// or https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
				var verr *sharederrors.ValidationError
				assert.ErrorAs(t, err, &verr)
			}
		})
	}
}

func TestURLSubmitRejectsInvalidInputLocally(t *testing.T) {
	analyzer := &fakeURLAnalyzer{}
	s := NewURLSession(analyzer, hclog.NewNullLogger())

	result, err := s.Submit(context.Background(), "not-a-url")

	assert.Nil(t, result)
	assert.EqualError(t, err, "URL must start with http:// or https://")
	assert.Equal(t, StatusIdle, s.Status())
	assert.Equal(t, 0, analyzer.callCount())
}

func TestURLSubmitSuccess(t *testing.T) {
	analyzer := &fakeURLAnalyzer{
		result: &api.URLAnalysisResult{
			URL:          "https://phish.example",
			RiskScore:    82,
			RiskCategory: "phishing",
		},
	}
	s := NewURLSession(analyzer, hclog.NewNullLogger())

	result, err := s.Submit(context.Background(), "  https://phish.example  ")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, StatusSucceeded, s.Status())
	assert.Equal(t, "https://phish.example", s.URL())
	assert.Equal(t, 82, result.RiskScore)
	assert.Equal(t, 1, analyzer.callCount())
}

func TestURLSubmitServerError(t *testing.T) {
	analyzer := &fakeURLAnalyzer{
		err: sharederrors.NewServerError(503, "", "Analysis failed. Please try again."),
	}
	s := NewURLSession(analyzer, hclog.NewNullLogger())

	result, err := s.Submit(context.Background(), "https://example.com")

	assert.Nil(t, result)
	assert.EqualError(t, err, "Analysis failed. Please try again.")
	assert.Equal(t, StatusFailed, s.Status())
	assert.Equal(t, "Analysis failed. Please try again.", s.LastError())
}

func TestURLReset(t *testing.T) {
	analyzer := &fakeURLAnalyzer{
		result: &api.URLAnalysisResult{URL: "https://example.com", RiskScore: 12},
	}
	s := NewURLSession(analyzer, hclog.NewNullLogger())

	_, err := s.Submit(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.Equal(t, StatusSucceeded, s.Status())

	s.Reset()

	assert.Equal(t, StatusIdle, s.Status())
	assert.Empty(t, s.URL())
	assert.Nil(t, s.Result())
	assert.Empty(t, s.LastError())
}
