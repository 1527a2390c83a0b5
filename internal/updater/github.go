package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/atomicstack/image-sourcery/internal/logging"
)

// retryLogger forwards retryablehttp diagnostics to the trace log instead of
// stderr, which belongs to the terminal UI.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {
	traceHTTP("update.http.error", msg, keysAndValues)
}

func (retryLogger) Info(string, ...interface{}) {}

func (retryLogger) Debug(string, ...interface{}) {}

func (retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	traceHTTP("update.http.warn", msg, keysAndValues)
}

func traceHTTP(event, msg string, keysAndValues []interface{}) {
	if !logging.TraceEnabled() {
		return
	}
	logging.Trace(event, map[string]interface{}{"msg": msg, "kv": fmt.Sprint(keysAndValues...)})
}

// githubRelease is the subset of the "latest release" response we read.
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name string `json:"name"`
		URL  string `json:"browser_download_url"`
	} `json:"assets"`
}

// GitHubSource reads a GitHub-style latest release endpoint.
type GitHubSource struct {
	URL       string
	UserAgent string
	GOOS      string
	GOARCH    string

	client *http.Client
}

// NewGitHubSource returns a source for url. retries is the number of extra
// attempts the HTTP client makes on transient failures.
func NewGitHubSource(url, userAgent string, retries int) *GitHubSource {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retries
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = retryLogger{}
	rc.HTTPClient.Timeout = 30 * time.Second
	return &GitHubSource{
		URL:       url,
		UserAgent: userAgent,
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		client:    rc.StandardClient(),
	}
}

func (g *GitHubSource) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", g.UserAgent)
	req.Header.Set("Accept", accept)
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return resp, nil
}

// Latest fetches the newest release and picks the asset built for this
// platform.
func (g *GitHubSource) Latest(ctx context.Context) (Release, error) {
	resp, err := g.get(ctx, g.URL, "application/vnd.github.v3+json")
	if err != nil {
		return Release{}, err
	}
	defer resp.Body.Close()

	var payload githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Release{}, fmt.Errorf("parse release: %w", err)
	}
	if payload.TagName == "" {
		return Release{}, fmt.Errorf("release has no tag")
	}
	rel := Release{Version: payload.TagName, URL: payload.HTMLURL}
	for _, asset := range payload.Assets {
		if g.matchesPlatform(asset.Name) {
			rel.AssetURL = asset.URL
			break
		}
	}
	return rel, nil
}

func (g *GitHubSource) matchesPlatform(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, g.GOOS) && strings.Contains(lower, g.GOARCH)
}

// Download streams the release asset into dst.
func (g *GitHubSource) Download(ctx context.Context, rel Release, dst *os.File) error {
	if rel.AssetURL == "" {
		return fmt.Errorf("release %s has no %s/%s asset", rel.Version, g.GOOS, g.GOARCH)
	}
	resp, err := g.get(ctx, rel.AssetURL, "application/octet-stream")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("download asset: %w", err)
	}
	return nil
}
