package bing

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/tanq16/bingwall/internal/utils"
)

type archiveResponse struct {
	Images *[]archiveImage `json:"images"`
}

type archiveImage struct {
	URL       *string `json:"url"`
	Title     *string `json:"title"`
	StartDate *string `json:"startdate"`
}

func absoluteURL(baseURL, relative string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(relative, "/")
}

// formatStartDate turns "20230704" into "2023_07_04".
func formatStartDate(startDate string) (string, error) {
	if len(startDate) != 8 {
		return "", fmt.Errorf("%w: startdate %q is not YYYYMMDD", utils.ErrParse, startDate)
	}
	date, err := time.Parse("20060102", startDate)
	if err != nil {
		return "", fmt.Errorf("%w: startdate %q: %v", utils.ErrParse, startDate, err)
	}
	return date.Format("2006_01_02"), nil
}

func imageID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: image url %q: %v", utils.ErrParse, rawURL, err)
	}
	// pairs are split on '&' only; a bad escape is kept as written
	for _, pair := range strings.Split(parsed.RawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if unescapeLenient(key) != "id" || value == "" {
			continue
		}
		return unescapeLenient(value), nil
	}
	return "", fmt.Errorf("%w: image url %q has no id parameter", utils.ErrParse, rawURL)
}

// fileSuffix returns the extension of the last path element of id, or "" when
// the element has no dot past its first character.
func fileSuffix(id string) string {
	name := path.Base(id)
	if name == "." || name == "/" {
		return ""
	}
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

func buildDescriptor(baseURL string, index int, img archiveImage) (utils.Descriptor, error) {
	if img.URL == nil || *img.URL == "" {
		return utils.Descriptor{}, fmt.Errorf("%w: image %d has no url", utils.ErrParse, index)
	}
	// a null title decodes the same as an absent one
	if img.Title == nil {
		return utils.Descriptor{}, fmt.Errorf("%w: image %d has no title", utils.ErrParse, index)
	}
	if img.StartDate == nil {
		return utils.Descriptor{}, fmt.Errorf("%w: image %d has no startdate", utils.ErrParse, index)
	}
	sourceURL := absoluteURL(baseURL, *img.URL)
	date, err := formatStartDate(*img.StartDate)
	if err != nil {
		return utils.Descriptor{}, fmt.Errorf("image %d: %w", index, err)
	}
	id, err := imageID(sourceURL)
	if err != nil {
		return utils.Descriptor{}, fmt.Errorf("image %d: %w", index, err)
	}
	name := utils.Sanitize(fmt.Sprintf("%s %s%s", date, *img.Title, fileSuffix(id)))
	return utils.Descriptor{SourceURL: sourceURL, FileName: name}, nil
}

func unescapeLenient(s string) string {
	if out, err := url.QueryUnescape(s); err == nil {
		return out
	}
	return s
}
