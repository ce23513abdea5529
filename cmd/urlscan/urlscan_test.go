package urlscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURLScanArgs(t *testing.T) {
	tests := []struct {
		name    string
		options RunOptionsURLScan
		args    []string
		wantErr string
	}{
		{
			// valid: dfirctl urlscan https://example.com
			name:    "Valid https URL",
			options: RunOptionsURLScan{},
			args:    []string{"https://example.com"},
			wantErr: "",
		},
		{
			// valid: dfirctl urlscan http://example.com --report sarif
			name:    "Valid http URL with report",
			options: RunOptionsURLScan{Report: "sarif"},
			args:    []string{"http://example.com"},
			wantErr: "",
		},
		{
			// fail: dfirctl urlscan
			name:    "Missing URL",
			options: RunOptionsURLScan{},
			args:    []string{},
			wantErr: "Please enter a URL to analyze.",
		},
		{
			// fail: dfirctl urlscan not-a-url
			name:    "URL without scheme",
			options: RunOptionsURLScan{},
			args:    []string{"not-a-url"},
			wantErr: "URL must start with http:// or https://",
		},
		{
			// fail: dfirctl urlscan a b
			name:    "Multiple URLs",
			options: RunOptionsURLScan{},
			args:    []string{"https://a.com", "https://b.com"},
			wantErr: "only one URL can be analyzed at a time",
		},
		{
			// fail: dfirctl urlscan https://example.com --report csv
			name:    "Unsupported report format",
			options: RunOptionsURLScan{Report: "csv"},
			args:    []string{"https://example.com"},
			wantErr: "the 'report' flag must be one of: pdf, sarif",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURLScanArgs(&tt.options, tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
