// Package api is the HTTP adapter for the DFIR Analyzer backend. It owns the
// wire formats and the error taxonomy; it never mutates session state, the
// callers do.
package api

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/dfir-analyzer/dfirctl/pkg/shared/config"
	sharederrors "github.com/dfir-analyzer/dfirctl/pkg/shared/errors"
	"github.com/dfir-analyzer/dfirctl/pkg/shared/httpclient"
)

// Fallback messages shown when the server returns no detail body.
const (
	fallbackUpload   = "Upload failed. Try again."
	fallbackURLScan  = "Analysis failed. Please try again."
	fallbackLogin    = "Login failed. Please try again."
	fallbackRegister = "Registration failed. Please try again."
	fallbackAccount  = "Failed to load account."
	fallbackStats    = "Failed to load stats."
	fallbackHistory  = "Failed to load history."
)

// TokenSource provides the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

// Client talks to the analyzer API over HTTP.
type Client struct {
	httpc  *resty.Client
	logger hclog.Logger
	tokens TokenSource
}

// NewClient builds a Client against the configured server URL. The bearer
// token is attached by a request middleware so every call site gets it
// uniformly; requests also carry a correlation id for server-side log
// matching.
func NewClient(cfg *config.Config, logger hclog.Logger, tokens TokenSource) *Client {
	httpc := httpclient.InitializeRestyClient(logger, cfg)
	httpc.SetBaseURL(config.GetServerURL(cfg))

	client := &Client{
		httpc:  httpc,
		logger: logger,
		tokens: tokens,
	}

	httpc.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		if tokens != nil {
			if token := tokens.Token(); token != "" {
				req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))
			}
		}
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return client
}

// AnalyzeFile uploads content as a multipart file and returns the normalized
// analysis result.
func (c *Client) AnalyzeFile(ctx context.Context, filename string, content io.Reader) (*AnalysisResult, error) {
	var body analyzeResponse
	var apiErr errorResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetFileReader("file", filename, content).
		SetResult(&body).
		SetError(&apiErr).
		Post("/analyze")
	if cerr := c.classify(resp, err, apiErr.Detail, fallbackUpload); cerr != nil {
		return nil, cerr
	}

	result := body.normalize()
	if result.OriginalFilename == "" {
		result.OriginalFilename = filename
	}
	c.logger.Debug("file analysis completed", "filename", result.OriginalFilename, "score", result.RiskScore)
	return result, nil
}

// AnalyzeURL submits a URL for threat-intelligence analysis. The caller is
// responsible for validating the URL first; nothing malformed should reach
// this method.
func (c *Client) AnalyzeURL(ctx context.Context, url string) (*URLAnalysisResult, error) {
	var body urlAnalyzeResponse
	var apiErr errorResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetBody(map[string]string{"url": url}).
		SetResult(&body).
		SetError(&apiErr).
		Post("/api/url/analyze")
	if cerr := c.classify(resp, err, apiErr.Detail, fallbackURLScan); cerr != nil {
		return nil, cerr
	}

	result := body.normalize(url)
	c.logger.Debug("url analysis completed", "url", result.URL, "score", result.RiskScore, "category", result.RiskCategory)
	return result, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var body AuthResponse
	var apiErr errorResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&body).
		SetError(&apiErr).
		Post("/auth/login")
	if cerr := c.classify(resp, err, apiErr.Detail, fallbackLogin); cerr != nil {
		return nil, cerr
	}
	return &body, nil
}

// Register creates an account and returns its first access token.
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	var body AuthResponse
	var apiErr errorResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password, "name": name}).
		SetResult(&body).
		SetError(&apiErr).
		Post("/auth/register")
	if cerr := c.classify(resp, err, apiErr.Detail, fallbackRegister); cerr != nil {
		return nil, cerr
	}
	return &body, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var body Account
	var apiErr errorResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetResult(&body).
		SetError(&apiErr).
		Get("/auth/me")
	if cerr := c.classify(resp, err, apiErr.Detail, fallbackAccount); cerr != nil {
		return nil, cerr
	}
	return &body, nil
}

// Stats fetches the dashboard aggregates.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var body Stats
	var apiErr errorResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetResult(&body).
		SetError(&apiErr).
		Get("/stats")
	if cerr := c.classify(resp, err, apiErr.Detail, fallbackStats); cerr != nil {
		return nil, cerr
	}
	return &body, nil
}

// History lists past scans, newest first, capped at limit.
func (c *Client) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	var body []HistoryEntry
	var apiErr errorResponse

	resp, err := c.httpc.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&body).
		SetError(&apiErr).
		Get("/history")
	if cerr := c.classify(resp, err, apiErr.Detail, fallbackHistory); cerr != nil {
		return nil, cerr
	}
	return body, nil
}

// BaseURL exposes the configured server endpoint for the download engine.
func (c *Client) BaseURL() string {
	return c.httpc.BaseURL
}

// classify maps a resty outcome onto the error taxonomy: transport failure
// becomes a NetworkError behind the flow's fallback message, a non-2xx becomes
// a ServerError carrying the server detail when one was present.
func (c *Client) classify(resp *resty.Response, err error, detail, fallback string) error {
	if err != nil {
		c.logger.Error("request failed", "error", err)
		return sharederrors.NewNetworkError(fallback, err)
	}
	if resp.IsSuccess() {
		return nil
	}
	c.logger.Error("server rejected request", "status", resp.StatusCode(), "detail", detail)
	return sharederrors.NewServerError(resp.StatusCode(), detail, fallback)
}
