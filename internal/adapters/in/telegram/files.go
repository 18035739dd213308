package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// maxDownloadSize is the Bot API limit for files a bot may download.
const maxDownloadSize = 20 << 20

// FileDownloader fetches the bytes of a file a user sent.
type FileDownloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// HTTPFileDownloader resolves the file URL through the Bot API and fetches it.
type HTTPFileDownloader struct {
	api    API
	client *http.Client
}

func NewHTTPFileDownloader(api API) *HTTPFileDownloader {
	return &HTTPFileDownloader{
		api:    api,
		client: &http.Client{Timeout: time.Minute},
	}
}

func (d *HTTPFileDownloader) Download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := d.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file %s: unexpected status %s", fileID, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileID, err)
	}
	if len(data) > maxDownloadSize {
		return nil, errs.NewValueIsOutOfRangeError("file size", len(data), 1, maxDownloadSize)
	}
	return data, nil
}
