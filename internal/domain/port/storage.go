package port

import (
	"context"
	"time"
)

// ImageStorage uploads highlight frames to object storage and enforces
// a retention window. Upload returns the public URL of the object.
type ImageStorage interface {
	Upload(ctx context.Context, localPath, objectKey string) (string, error)
	CleanupOlderThan(ctx context.Context, retention time.Duration) error
}
