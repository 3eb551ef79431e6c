package videos

import (
	"context"
	"io"
)

// BlobRepository stores uploaded media and produced segments under slash separated keys.
type BlobRepository interface {
	Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Publish(ctx context.Context, key string, localPath string) (string, error)
	ListChildren(ctx context.Context, dir string) ([]string, error)
	Remove(ctx context.Context, key string) error
	URL(key string) string
	// ResolveInput turns a stored location into something ffmpeg can open.
	// The result may expire, callers resolve it again for each use.
	ResolveInput(ctx context.Context, location string) (string, error)
}
