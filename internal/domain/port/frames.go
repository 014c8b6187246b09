package port

import (
	"context"
	"errors"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

// ErrMediaOpen marks a video file that could not be opened for decoding.
// Callers treat it as "no highlights this time", not as a pipeline failure.
var ErrMediaOpen = errors.New("open video for decoding")

// FrameSelector captures the sharpest, most information-dense frame near
// each visual cue and persists it as a JPEG under outputDir.
//
// The result is ordered like the input and never longer than it: cues
// whose probes all fail to decode are dropped silently. A video that
// cannot be opened yields an empty result and an error the caller logs
// and moves past; only persistence failures are loud.
type FrameSelector interface {
	SelectFrames(ctx context.Context, videoPath string, cues []entity.VisualCue, outputDir string) ([]entity.SelectedFrame, error)
}
