package report

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageFetcher retrieves the stored X-ray from its locator. A failed or slow
// fetch is not fatal to rendering; the report shows a placeholder instead.
type ImageFetcher interface {
	Fetch(url string) ([]byte, error)
}

// fetchTimeout bounds the radiograph fetch so a slow storage backend cannot
// hang report rendering.
const fetchTimeout = 5 * time.Second

type HTTPImageFetcher struct {
	client *http.Client
}

func NewHTTPImageFetcher() *HTTPImageFetcher {
	return &HTTPImageFetcher{client: &http.Client{Timeout: fetchTimeout}}
}

func (f *HTTPImageFetcher) Fetch(url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("report: empty image URL")
	}
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("report: image fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
