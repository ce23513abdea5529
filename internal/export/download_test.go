package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
	sharederrors "github.com/dfir-analyzer/dfirctl/pkg/shared/errors"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func testDownloader(t *testing.T, handler http.Handler, token string) *Downloader {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Dfirctl: config.Dfirctl{ServerURL: srv.URL},
		HTTPClient: config.HTTPClient{
			RetryWaitTime:    time.Millisecond,
			RetryMaxWaitTime: 5 * time.Millisecond,
		},
	}
	return NewDownloader(cfg, hclog.NewNullLogger(), staticToken(token))
}

func TestDownloadWritesBody(t *testing.T) {
	const digest = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

	var gotPath, gotSHA, gotAuth string
	d := testDownloader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSHA = r.URL.Query().Get("sha256")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("filename,score\nreport.pdf,65\n"))
	}), "tok-xyz")

	dest := filepath.Join(t.TempDir(), "report.csv")
	err := d.Download(context.Background(), FormatCSV, digest, dest)

	require.NoError(t, err)
	assert.Equal(t, "/export/csv", gotPath)
	assert.Equal(t, digest, gotSHA)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "filename,score\nreport.pdf,65\n", string(data))
}

func TestDownloadServerRejection(t *testing.T) {
	d := testDownloader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "unknown sha256"}`))
	}), "")

	dest := filepath.Join(t.TempDir(), "missing.json")
	err := d.Download(context.Background(), FormatJSON, "ab", dest)

	require.Error(t, err)
	var xerr *sharederrors.ExportError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "json", xerr.Format)

	var serr *sharederrors.ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Equal(t, "unknown sha256", serr.Detail)

	// No partial file on rejection.
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadDetailFallback(t *testing.T) {
	d := testDownloader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}), "")

	err := d.Download(context.Background(), FormatCSV, "ab", filepath.Join(t.TempDir(), "out.csv"))

	require.Error(t, err)
	var serr *sharederrors.ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "server returned 500", serr.Detail)
}
