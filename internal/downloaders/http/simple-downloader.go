package bingwallhttp

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/bingwall/internal/utils"
)

// Fetch downloads url and returns the whole body. There are no retries; the
// caller decides whether a failure is fatal.
func Fetch(ctx context.Context, client utils.HTTPDoer, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: error creating GET request: %v", utils.ErrFetch, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", utils.ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w", utils.ErrFetch, &utils.StatusError{StatusCode: resp.StatusCode, URL: url})
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response body: %v", utils.ErrFetch, err)
	}
	log.Debug().Str("op", "http/simple-downloader").Str("url", url).Int("bytes", len(data)).Msg("Fetched image")
	return data, nil
}
