package wikipedia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/logger"

	"go.uber.org/zap"
)

// maxBodyBytes caps how much of a Wikipedia page is read into memory.
const maxBodyBytes = 10 * 1024 * 1024

// Fetcher retrieves raw article HTML over HTTP. It performs a single GET with
// no retries; failures are mapped to domain fetch errors.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch implements domain.ArticleFetcher
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", domain.NewFetchError("failed to build request", err)
	}
	req.Header.Set("User-Agent", "wikiquiz/1.0 (quiz generation service)")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Get().Error("Wikipedia fetch failed", zap.String("url", url), zap.Error(err))
		return "", domain.NewFetchError("failed to fetch Wikipedia article", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Get().Error("Wikipedia returned non-success status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return "", domain.NewFetchError(
			fmt.Sprintf("Wikipedia returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", domain.NewFetchError("failed to read Wikipedia response body", err)
	}

	return string(body), nil
}

var _ domain.ArticleFetcher = (*Fetcher)(nil)
