package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
	sharederrors "github.com/dfir-analyzer/dfirctl/pkg/shared/errors"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/httpclient"
)

// Format selects a server-side export endpoint.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// TokenSource provides the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

// Downloader streams server-generated CSV/JSON exports to local files. It
// uses a retrying plain-HTTP client rather than the resty adapter because the
// body is an opaque byte stream, not a JSON document to decode.
type Downloader struct {
	client  *retryablehttp.Client
	baseURL string
	tokens  TokenSource
	logger  hclog.Logger
}

// NewDownloader builds a Downloader against the configured server URL.
func NewDownloader(cfg *config.Config, logger hclog.Logger, tokens TokenSource) *Downloader {
	return &Downloader{
		client:  httpclient.InitializeRetryableClient(logger, cfg),
		baseURL: config.GetServerURL(cfg),
		tokens:  tokens,
		logger:  logger,
	}
}

// Download fetches /export/<format>?sha256=<hex> and writes the body to
// destPath. Failures come back as ExportError; the session state is untouched
// either way.
func (d *Downloader) Download(ctx context.Context, format Format, sha256Hex, destPath string) error {
	endpoint := fmt.Sprintf("%s/export/%s?sha256=%s", d.baseURL, format, url.QueryEscape(sha256Hex))

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return sharederrors.NewExportError(string(format), err)
	}
	if d.tokens != nil {
		if token := d.tokens.Token(); token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return sharederrors.NewExportError(string(format), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := extractDetail(resp.Body)
		d.logger.Error("export download rejected", "format", format, "status", resp.StatusCode, "detail", detail)
		return sharederrors.NewExportError(string(format),
			sharederrors.NewServerError(resp.StatusCode, detail, fmt.Sprintf("server returned %d", resp.StatusCode)))
	}

	out, err := os.Create(destPath)
	if err != nil {
		return sharederrors.NewExportError(string(format), err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return sharederrors.NewExportError(string(format), err)
	}

	d.logger.Info("export downloaded", "format", format, "path", destPath, "bytes", written)
	return nil
}

// extractDetail pulls the {"detail": ...} message out of an error body, best
// effort.
func extractDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil {
		return ""
	}
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ""
	}
	return parsed.Detail
}
