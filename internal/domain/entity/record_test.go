package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessingRecordLifecycle(t *testing.T) {
	rec := NewProcessingRecord(42, 3)
	assert.False(t, rec.Done())
	assert.False(t, rec.Exhausted())

	rec.MarkFailed("boom")
	assert.Equal(t, RecordStatusFailed, rec.Status)
	assert.Equal(t, 1, rec.Attempts)
	assert.False(t, rec.Done())

	rec.MarkFailed("boom again")
	rec.MarkFailed("last straw")
	assert.True(t, rec.Done())
	assert.True(t, rec.Exhausted())
	assert.Equal(t, "last straw", rec.ErrorMessage)
}

func TestProcessingRecordCompletedClearsError(t *testing.T) {
	rec := NewProcessingRecord(1, 3)
	rec.MarkFailed("transient")
	rec.MarkCompleted()

	assert.Equal(t, RecordStatusCompleted, rec.Status)
	assert.Empty(t, rec.ErrorMessage)
	assert.True(t, rec.Done())
	assert.False(t, rec.Exhausted())
}
