package port

import (
	"context"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

// MediaFetcher is the video source side of the pipeline: URL
// verification, audio/subtitle extraction and full video download,
// all backed by yt-dlp.
type MediaFetcher interface {
	// Verify reports whether the URL resolves to something yt-dlp can
	// handle, without downloading anything.
	Verify(ctx context.Context, url string) bool

	// Fetch downloads the best audio track, grabs subtitles when
	// available, and returns transcript, audio path and metadata.
	Fetch(ctx context.Context, url string) (entity.Media, error)

	// TimedTranscript returns the transcript with per-line timestamps
	// preserved, for visual-cue analysis. Empty when no subtitles exist.
	TimedTranscript(videoID string) string

	// DownloadVideo fetches the full video file for frame capture and
	// returns its local path.
	DownloadVideo(ctx context.Context, url, videoID string) (string, error)
}
