package providers

import (
	"context"
	"io"
)

// ImageStore defines the interface for hosting car images. Put accepts the
// uploaded file content and returns a durable HTTPS URL.
type ImageStore interface {
	Put(ctx context.Context, filename string, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}
