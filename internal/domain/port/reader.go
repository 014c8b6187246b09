package port

import (
	"context"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

// ReaderPublisher pushes finished digests into a read-later service
// (Readwise Reader).
type ReaderPublisher interface {
	SaveDigest(ctx context.Context, digest entity.Digest, tags []string) error
}
