package port

import (
	"context"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

// HistoryRepository persists per-bookmark processing records so runs
// are idempotent across restarts.
type HistoryRepository interface {
	// Find returns the record for a bookmark, or nil when it was never
	// attempted.
	Find(ctx context.Context, bookmarkID int64) (*entity.ProcessingRecord, error)
	Save(ctx context.Context, record *entity.ProcessingRecord) error
}
