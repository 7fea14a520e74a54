package bing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/bingwall/internal/utils"
)

// Fetcher reads the image archive feed and turns it into descriptors.
type Fetcher struct {
	client  utils.HTTPDoer
	baseURL string
}

func NewFetcher(client utils.HTTPDoer, baseURL string) *Fetcher {
	if baseURL == "" {
		baseURL = utils.DefaultBaseURL
	}
	return &Fetcher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (f *Fetcher) archiveURL(days int) string {
	return fmt.Sprintf("%s/HPImageArchive.aspx?format=js&idx=0&n=%d", f.baseURL, days)
}

// FetchDescriptors issues one archive request for the last days images and
// returns a descriptor per feed entry, most recent first.
func (f *Fetcher) FetchDescriptors(ctx context.Context, days int) ([]utils.Descriptor, error) {
	archiveURL := f.archiveURL(days)
	log.Debug().Str("op", "bing/initial").Str("url", archiveURL).Msg("Requesting image archive")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: error creating request: %v", utils.ErrFetch, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", utils.ErrFetch, archiveURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w", utils.ErrFetch, &utils.StatusError{StatusCode: resp.StatusCode, URL: archiveURL})
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading archive response: %v", utils.ErrFetch, err)
	}
	return f.parseArchive(body)
}

func (f *Fetcher) parseArchive(body []byte) ([]utils.Descriptor, error) {
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: archive response is not valid UTF-8", utils.ErrParse)
	}
	var archive archiveResponse
	if err := json.Unmarshal(body, &archive); err != nil {
		return nil, fmt.Errorf("%w: archive response: %v", utils.ErrParse, err)
	}
	if archive.Images == nil {
		return nil, fmt.Errorf("%w: archive response has no images field", utils.ErrParse)
	}
	descriptors := make([]utils.Descriptor, 0, len(*archive.Images))
	for i, img := range *archive.Images {
		d, err := buildDescriptor(f.baseURL, i, img)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	log.Info().Str("op", "bing/initial").Int("images", len(descriptors)).Msg("Image archive parsed")
	return descriptors, nil
}
