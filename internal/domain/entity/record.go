package entity

import "time"

type RecordStatus string

const (
	RecordStatusCompleted RecordStatus = "COMPLETED"
	RecordStatusFailed    RecordStatus = "FAILED"
)

// ProcessingRecord tracks one bookmark's journey through the pipeline.
// Completed bookmarks are never picked up again; failed ones are retried
// on later runs until their attempts run out.
type ProcessingRecord struct {
	BookmarkID   int64
	Status       RecordStatus
	Attempts     int
	MaxAttempts  int
	ErrorMessage string
	UpdatedAt    time.Time
}

func NewProcessingRecord(bookmarkID int64, maxAttempts int) *ProcessingRecord {
	return &ProcessingRecord{
		BookmarkID:  bookmarkID,
		MaxAttempts: maxAttempts,
		UpdatedAt:   time.Now().UTC(),
	}
}

func (r *ProcessingRecord) MarkCompleted() {
	r.Status = RecordStatusCompleted
	r.ErrorMessage = ""
	r.UpdatedAt = time.Now().UTC()
}

func (r *ProcessingRecord) MarkFailed(errMsg string) {
	r.Status = RecordStatusFailed
	r.Attempts++
	r.ErrorMessage = errMsg
	r.UpdatedAt = time.Now().UTC()
}

// Done reports whether the pipeline should skip this bookmark: it either
// succeeded already or exhausted its attempts.
func (r *ProcessingRecord) Done() bool {
	if r.Status == RecordStatusCompleted {
		return true
	}
	return r.Attempts >= r.MaxAttempts
}

// Exhausted reports whether the bookmark failed for good.
func (r *ProcessingRecord) Exhausted() bool {
	return r.Status == RecordStatusFailed && r.Attempts >= r.MaxAttempts
}
