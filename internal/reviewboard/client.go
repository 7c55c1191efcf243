package reviewboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dshills/rbarchive/internal/logger"
	"github.com/dshills/rbarchive/internal/ratelimit"
)

const (
	DefaultAPIURL  = "https://reviewboard.mozilla.org/api"
	DefaultSiteURL = "https://reviewboard.mozilla.org"

	defaultUserAgent = "rbarchive"
)

// Client fetches diff listings and raw patches from a Review Board server.
type Client struct {
	apiURL    string
	siteURL   string
	userAgent string
	httpCli   *http.Client
	limiter   *ratelimit.Limiter
}

// Options configures a Client. Zero values fall back to the Mozilla
// Review Board instance, a client with no timeout, and no rate limit.
type Options struct {
	APIURL     string
	SiteURL    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Limiter    *ratelimit.Limiter
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	siteURL := opts.SiteURL
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	httpCli := opts.HTTPClient
	if httpCli == nil {
		httpCli = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		apiURL:    strings.TrimRight(apiURL, "/"),
		siteURL:   strings.TrimRight(siteURL, "/"),
		userAgent: ua,
		httpCli:   httpCli,
		limiter:   opts.Limiter,
	}
}

type diffList struct {
	TotalResults *int `json:"total_results"`
}

// DiffCount returns how many diff revisions the review request has.
func (c *Client) DiffCount(ctx context.Context, revisionID int) (int, error) {
	url := fmt.Sprintf("%s/review-requests/%d/diffs/", c.apiURL, revisionID)

	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return 0, err
	}

	var list diffList
	if err := json.Unmarshal(body, &list); err != nil {
		return 0, &Error{Kind: KindDecode, URL: url, Err: err}
	}
	if list.TotalResults == nil {
		return 0, &Error{Kind: KindDecode, URL: url, Err: fmt.Errorf("missing total_results")}
	}
	if *list.TotalResults < 0 {
		return 0, &Error{Kind: KindDecode, URL: url, Err: fmt.Errorf("negative total_results %d", *list.TotalResults)}
	}
	return *list.TotalResults, nil
}

// Patch downloads the raw patch for one diff revision. The bytes are
// returned exactly as served.
func (c *Client) Patch(ctx context.Context, revisionID, diffID int) ([]byte, error) {
	url := fmt.Sprintf("%s/r/%d/diff/%d/raw", c.siteURL, revisionID, diffID)
	return c.get(ctx, url, "")
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	logger.Debug("request", "method", req.Method, "url", url)
	start := time.Now()

	resp, err := c.httpCli.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Debug("request failed", "url", url, "error", err)
		return nil, &Error{Kind: KindConnection, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Error{Kind: KindConnection, URL: url, Err: fmt.Errorf("reading response: %w", err)}
	}

	logger.Debug("response", "url", url, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return nil, &Error{Kind: KindNotFound, URL: url, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Kind: KindStatus, URL: url, StatusCode: resp.StatusCode}
	}

	return body, nil
}

func statusText(code int) string {
	text := http.StatusText(code)
	if code >= 400 && code < 500 {
		return "Client Error: " + text
	}
	if code >= 500 {
		return "Server Error: " + text
	}
	return text
}
