package port

import (
	"context"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

// LanguageModel is the slice of an LLM provider the pipeline actually
// consumes. One implementation exists (Gemini); keep this flat.
type LanguageModel interface {
	// SummarizeText produces a Markdown digest from a plain transcript.
	SummarizeText(ctx context.Context, transcript string) (string, error)

	// SummarizeAudio produces a Markdown digest directly from an audio
	// file, used when no subtitles exist.
	SummarizeAudio(ctx context.Context, audioPath string) (string, error)

	// AnalyzeVisualCues proposes candidate timestamps from a transcript
	// that retains per-line timing.
	AnalyzeVisualCues(ctx context.Context, timedTranscript string) ([]entity.VisualCue, error)

	// AnalyzeVideoCues proposes candidate timestamps by watching the
	// video itself, the fallback when no transcript exists.
	AnalyzeVideoCues(ctx context.Context, videoPath string) ([]entity.VisualCue, error)

	// GenerateTitle condenses the summary into a short, filename-friendly
	// title.
	GenerateTitle(ctx context.Context, summary, originalTitle string) (string, error)

	// Classify picks the single best collection for a bookmark, or 0 when
	// none fits.
	Classify(ctx context.Context, title, note string, collections []entity.Collection) (int64, error)
}
