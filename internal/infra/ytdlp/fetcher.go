package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

// Fetcher wraps yt-dlp for URL verification, audio/subtitle extraction
// and full video download. Files land in dataDir named by video ID.
type Fetcher struct {
	dataDir  string
	subLangs []string
	logger   *zap.Logger
}

func NewFetcher(dataDir string, subLangs []string, logger *zap.Logger) (*Fetcher, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Fetcher{dataDir: dataDir, subLangs: subLangs, logger: logger}, nil
}

// videoInfo is the slice of yt-dlp's info JSON the pipeline cares about.
type videoInfo struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Uploader string  `json:"uploader"`
	Channel  string  `json:"channel"`
	Duration float64 `json:"duration"`
}

func (v videoInfo) uploaderName() string {
	if strings.TrimSpace(v.Uploader) != "" {
		return v.Uploader
	}
	if strings.TrimSpace(v.Channel) != "" {
		return v.Channel
	}
	return "Unknown"
}

// Verify runs a flat, simulated extraction to check yt-dlp can handle
// the URL at all.
func (f *Fetcher) Verify(ctx context.Context, url string) bool {
	dl := goytdlp.New().
		Simulate().
		FlatPlaylist().
		Quiet().
		NoWarnings()

	if _, err := dl.Run(ctx, url); err != nil {
		f.logger.Warn("url verification failed", zap.String("url", url), zap.Error(err))
		return false
	}
	return true
}

// Fetch downloads the best audio track as mp3, grabs manual and
// auto-generated subtitles for the configured languages, and parses the
// best subtitle file into a plain transcript.
func (f *Fetcher) Fetch(ctx context.Context, url string) (entity.Media, error) {
	dl := goytdlp.New().
		Format("bestaudio/best").
		Output(filepath.Join(f.dataDir, "%(id)s.%(ext)s")).
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality("192K").
		WriteSubs().
		WriteAutoSubs().
		SubLangs(strings.Join(f.subLangs, ",")).
		PrintJSON().
		NoPlaylist().
		NoWarnings()

	res, err := dl.Run(ctx, url)
	if err != nil {
		return entity.Media{}, fmt.Errorf("yt-dlp download: %w", err)
	}

	var info videoInfo
	if err := json.Unmarshal([]byte(res.Stdout), &info); err != nil {
		return entity.Media{}, fmt.Errorf("parse yt-dlp info json: %w", err)
	}
	if info.ID == "" {
		return entity.Media{}, fmt.Errorf("yt-dlp info json has no video id")
	}

	media := entity.Media{
		Meta: entity.VideoMeta{
			VideoID:  info.ID,
			Title:    info.Title,
			Uploader: info.uploaderName(),
			Duration: info.Duration,
		},
	}

	if path := f.findSubtitleFile(info.ID); path != "" {
		f.logger.Info("found subtitles", zap.String("path", path))
		transcript, err := parseSubtitleFile(path, false)
		if err != nil {
			f.logger.Error("subtitle parse failed", zap.String("path", path), zap.Error(err))
		} else {
			media.Transcript = transcript
		}
	}

	audioPath := filepath.Join(f.dataDir, info.ID+".mp3")
	if _, err := os.Stat(audioPath); err == nil {
		media.AudioPath = audioPath
	}

	// Some extractors return no duration in the info JSON; the downloaded
	// audio still knows it.
	if media.Meta.Duration == 0 && media.AudioPath != "" {
		media.Meta.Duration = probeDuration(ctx, media.AudioPath)
	}

	return media, nil
}

// probeDuration asks ffprobe for the container duration, 0 on any failure.
func probeDuration(ctx context.Context, path string) float64 {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0
	}
	return d
}

// TimedTranscript re-parses the subtitle file keeping per-cue timestamps,
// the form the visual-cue analysis needs. Empty when no subtitles exist.
func (f *Fetcher) TimedTranscript(videoID string) string {
	path := f.findSubtitleFile(videoID)
	if path == "" {
		return ""
	}
	timed, err := parseSubtitleFile(path, true)
	if err != nil {
		f.logger.Error("timed subtitle parse failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return timed
}

// DownloadVideo fetches the full video for frame capture. The file is
// the caller's to delete once frames are captured.
func (f *Fetcher) DownloadVideo(ctx context.Context, url, videoID string) (string, error) {
	dest := filepath.Join(f.dataDir, videoID+"_full.mp4")

	dl := goytdlp.New().
		Format("best[ext=mp4]/best").
		Output(dest).
		NoPlaylist().
		NoWarnings().
		Quiet()

	if _, err := dl.Run(ctx, url); err != nil {
		return "", fmt.Errorf("yt-dlp video download: %w", err)
	}
	if _, err := os.Stat(dest); err != nil {
		return "", fmt.Errorf("downloaded video missing: %w", err)
	}
	return dest, nil
}

// findSubtitleFile looks for <id>.<lang>.vtt / .srt in language priority
// order, matching yt-dlp's output naming.
func (f *Fetcher) findSubtitleFile(videoID string) string {
	for _, lang := range f.subLangs {
		for _, ext := range []string{"vtt", "srt"} {
			path := filepath.Join(f.dataDir, fmt.Sprintf("%s.%s.%s", videoID, lang, ext))
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
