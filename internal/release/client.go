package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/binstall/internal/logging"
)

const (
	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	// maxBodySize caps how much of a release document is read.
	maxBodySize = 10 << 20
)

// Client talks to the release API.
type Client struct {
	http      *http.Client
	apiBase   string
	userAgent string
	token     string
	logger    logging.Logger
}

// ClientConfig configures a Client.
type ClientConfig struct {
	APIBase   string
	UserAgent string
	// Token is sent as a bearer credential when non-empty.
	Token  string
	Logger logging.Logger
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// NewClient creates a release API client.
func NewClient(cfg ClientConfig) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		http:      hc,
		apiBase:   strings.TrimRight(cfg.APIBase, "/"),
		userAgent: cfg.UserAgent,
		token:     cfg.Token,
		logger:    logging.OrNoop(cfg.Logger),
	}
}

// ReleaseURL builds the API URL for the latest release (empty version) or
// for a specific tag.
func ReleaseURL(apiBase, repo, version string) string {
	base := strings.TrimRight(apiBase, "/")
	if version == "" {
		return fmt.Sprintf("%s/repos/%s/releases/latest", base, repo)
	}
	return fmt.Sprintf("%s/repos/%s/releases/tags/%s", base, repo, url.PathEscape(version))
}

// Resolve fetches the release metadata for repo at version ("" for latest).
// Any transport failure or non-2xx status is returned as an error; there
// is no retry.
func (c *Client) Resolve(ctx context.Context, repo, version string) (*Metadata, error) {
	endpoint := ReleaseURL(c.apiBase, repo, version)
	c.logger.Debug("fetching release metadata", "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read release metadata: %w", err)
	}

	meta := Parse(body)
	if meta.TagName == "" {
		meta.TagName = version
		if meta.TagName == "" {
			meta.TagName = "unknown"
		}
	}
	c.logger.Debug("release metadata parsed", "tag", meta.TagName, "assets", len(meta.AssetURLs))
	return meta, nil
}
