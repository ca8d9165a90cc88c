package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"matchwatch/internal/config"
	"matchwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Fetcher issues polite GET requests against the source site. A shared
// token-bucket limiter enforces the minimum inter-request interval across
// every crawl stage, so callers never sleep between requests themselves.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     zerolog.Logger
}

// NewFetcher creates a new Fetcher from scraper configuration.
func NewFetcher(cfg config.ScraperConfig, logger zerolog.Logger) *Fetcher {
	interval := time.Duration(cfg.MinRequestIntervalMs) * time.Millisecond
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSecs) * time.Second,
		},
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: cfg.UserAgent,
		logger:    logger.With().Str("component", "Fetcher").Logger(),
	}
}

// Fetch performs a rate-limited GET and returns the raw markup.
// There is no retry here: each crawl stage decides for itself how to
// degrade on failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, errorwrapper.WrapError(err, "rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to create HTTP request")
		return nil, errorwrapper.WrapError(err, "creating request for "+url)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			f.logger.Warn().Str("url", url).Msg("Request timed out")
			return nil, errorwrapper.NewNetworkError(url, "request timed out", errorwrapper.ErrTimeout)
		}
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to execute HTTP request")
		return nil, errorwrapper.NewNetworkError(url, "HTTP request failed",
			errors.Join(errorwrapper.ErrNetworkFailure, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn().Str("url", url).Int("status_code", resp.StatusCode).Msg("Received non-2xx HTTP status")
		return nil, errorwrapper.NewHTTPError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Error().Err(err).Str("url", url).Msg("Failed to read response body")
		return nil, errorwrapper.WrapError(err, "reading response body for "+url)
	}

	f.logger.Debug().Str("url", url).Int("size", len(body)).Msg("Page fetched")
	return body, nil
}

// isTimeout reports whether err is a client timeout.
func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
