package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScanArgs(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "sample.pdf")
	require.NoError(t, os.WriteFile(tmpFile, []byte("content"), 0644))

	tests := []struct {
		name    string
		options RunOptionsScan
		args    []string
		wantErr string
	}{
		{
			// valid: dfirctl scan /path/to/sample.pdf
			name:    "Valid target path",
			options: RunOptionsScan{},
			args:    []string{tmpFile},
			wantErr: "",
		},
		{
			// valid: dfirctl scan /path/to/sample.pdf --report pdf
			name:    "Valid report format",
			options: RunOptionsScan{Report: "pdf"},
			args:    []string{tmpFile},
			wantErr: "",
		},
		{
			// fail: dfirctl scan
			name:    "Missing target path",
			options: RunOptionsScan{},
			args:    []string{},
			wantErr: "a file path must be specified",
		},
		{
			// fail: dfirctl scan a.pdf b.pdf
			name:    "Multiple target paths",
			options: RunOptionsScan{},
			args:    []string{tmpFile, tmpFile},
			wantErr: "only one file can be scanned at a time",
		},
		{
			// fail: dfirctl scan /invalid/path
			name:    "Invalid target path",
			options: RunOptionsScan{},
			args:    []string{"/invalid/path/to/sample.pdf"},
			wantErr: "the target path does not exist: /invalid/path/to/sample.pdf",
		},
		{
			// fail: dfirctl scan sample.pdf --report html
			name:    "Unsupported report format",
			options: RunOptionsScan{Report: "html"},
			args:    []string{tmpFile},
			wantErr: "the 'report' flag must be one of: pdf, sarif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScanArgs(&tt.options, tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
