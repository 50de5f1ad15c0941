package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
)

// Download writes the file at loc to path. It implements media.Downloader.
func (c *Client) Download(ctx context.Context, loc tg.InputFileLocationClass, path string) error {
	if _, err := c.downloader.Download(c.client.API(), loc).ToPath(ctx, path); err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	return nil
}
