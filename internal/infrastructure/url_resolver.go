package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/yourusername/mimms/internal/domain"
	"go.uber.org/zap"
)

// mmsURLPattern finds an MMS URL embedded in an ASX playlist or arbitrary text
var mmsURLPattern = regexp.MustCompile(`(?:^|[ "'<]|\s)(mms.?://[^\t\n\v\f\r "'>]+)`)

// ExtractMMSURL returns the first MMS URL found in text
func ExtractMMSURL(text string) (string, bool) {
	m := mmsURLPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	// Trim and collapse whitespace runs.
	return strings.Join(strings.Fields(m[1]), " "), true
}

// Fetcher retrieves the full body of an HTTP resource as text
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches playlists with net/http
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a new HTTP fetcher
func NewHTTPFetcher(config *domain.FetchConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: config.Timeout},
		userAgent: config.UserAgent,
	}
}

// Fetch downloads url and returns the response body
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("received HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(body), nil
}

// WgetFetcher fetches playlists by running wget, for hosts where the
// system wget is configured (proxies, certificates) and Go is not
type WgetFetcher struct {
	binary  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewWgetFetcher creates a fetcher that shells out to binary
func NewWgetFetcher(binary string, config *domain.FetchConfig, logger *zap.Logger) *WgetFetcher {
	return &WgetFetcher{
		binary:  binary,
		timeout: config.Timeout,
		logger:  logger,
	}
}

// Fetch runs `wget -O - url` and returns its standard output
func (f *WgetFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{"-O", "-", url}
	f.logger.Debug("retrieving HTTP URL", zap.String("command", QuoteCommand(f.binary, args...)))

	var stderr strings.Builder
	cmd := exec.CommandContext(ctx, f.binary, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	f.logger.Debug("wget output", zap.String("stderr", stderr.String()))
	if err != nil {
		return string(out), fmt.Errorf("%s failed: %w", f.binary, err)
	}
	return string(out), nil
}

// URLResolver replaces playlist and stdin URLs with the MMS URL they contain
type URLResolver struct {
	fetcher Fetcher
	stdin   io.Reader
	logger  *zap.Logger
}

// NewURLResolver creates a new URL resolver
func NewURLResolver(fetcher Fetcher, stdin io.Reader, logger *zap.Logger) *URLResolver {
	return &URLResolver{
		fetcher: fetcher,
		stdin:   stdin,
		logger:  logger,
	}
}

// Resolve returns the MMS URL to connect to. When nothing is found the
// given URL is returned unchanged and the connect reports the failure.
func (r *URLResolver) Resolve(ctx context.Context, opts domain.Options) string {
	if !opts.Scheme.NeedsResolution() {
		return opts.URL
	}

	var text string
	switch opts.Scheme {
	case domain.SchemeHTTP:
		body, err := r.fetcher.Fetch(ctx, opts.URL)
		if err != nil {
			r.logger.Debug("Failed to retrieve playlist",
				zap.String("url", opts.URL),
				zap.Error(err))
		}
		text = body
	case domain.SchemeStdin:
		r.logger.Debug("searching for URL in stdin data")
		data, err := io.ReadAll(r.stdin)
		if err != nil {
			r.logger.Debug("Failed to read stdin", zap.Error(err))
		}
		text = string(data)
	}

	url, ok := ExtractMMSURL(text)
	if !ok {
		r.logger.Debug("no mms url found", zap.String("url", opts.URL))
		return opts.URL
	}

	r.logger.Debug("using grabbed mms url", zap.String("url", url))
	return url
}
