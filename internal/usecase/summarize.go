package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
	"github.com/hackerpeanutjohn/RainDigest/internal/domain/port"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/metrics"
)

const summarizedTag = "summarized"

// HTMLRenderer converts digest Markdown into the HTML the reader
// service ingests.
type HTMLRenderer interface {
	Render(markdown string) (string, error)
}

type SummarizeConfig struct {
	OutputDir           string
	MaxItems            int
	MaxRetries          int
	PerPage             int
	DryRun              bool
	DirectorMaxDuration float64
	Retention           time.Duration
}

// SummarizeUseCase polls the bookmarking service for saved videos,
// summarizes each through the language model, captures highlight frames
// when worthwhile, and publishes the result.
type SummarizeUseCase struct {
	bookmarks port.BookmarkService
	reader    port.ReaderPublisher
	llm       port.LanguageModel
	media     port.MediaFetcher
	frames    port.FrameSelector
	images    port.ImageStorage // nil disables uploads, frames stay local
	history   port.HistoryRepository
	notifier  port.FailureNotifier // nil disables failure mail
	renderer  HTMLRenderer
	logger    *zap.Logger
	cfg       SummarizeConfig
}

func NewSummarizeUseCase(
	bookmarks port.BookmarkService,
	reader port.ReaderPublisher,
	llm port.LanguageModel,
	media port.MediaFetcher,
	frames port.FrameSelector,
	images port.ImageStorage,
	history port.HistoryRepository,
	notifier port.FailureNotifier,
	renderer HTMLRenderer,
	logger *zap.Logger,
	cfg SummarizeConfig,
) *SummarizeUseCase {
	if cfg.PerPage == 0 {
		cfg.PerPage = 50
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	return &SummarizeUseCase{
		bookmarks: bookmarks,
		reader:    reader,
		llm:       llm,
		media:     media,
		frames:    frames,
		images:    images,
		history:   history,
		notifier:  notifier,
		renderer:  renderer,
		logger:    logger,
		cfg:       cfg,
	}
}

// Execute runs one full poll over every collection. Per-bookmark errors
// are recorded and skipped; only failures to reach the bookmark service
// abort the run.
func (uc *SummarizeUseCase) Execute(ctx context.Context) error {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "SummarizeUseCase.Execute")
	defer span.End()

	if uc.images != nil && uc.cfg.Retention > 0 {
		if err := uc.images.CleanupOlderThan(ctx, uc.cfg.Retention); err != nil {
			uc.logger.Warn("image retention cleanup failed", zap.Error(err))
		}
	}

	collections, err := uc.bookmarks.Collections(ctx)
	if err != nil {
		return fmt.Errorf("fetch collections: %w", err)
	}
	uc.logger.Info("fetched collections", zap.Int("count", len(collections)))

	processed := 0
	for _, col := range collections {
		if uc.limitReached(processed) {
			uc.logger.Info("reached max items, stopping", zap.Int("max_items", uc.cfg.MaxItems))
			break
		}
		if col.ID == entity.UnsortedCollectionID {
			continue
		}

		candidates, err := uc.bookmarks.VideoCandidates(ctx, col.ID, uc.cfg.PerPage)
		if err != nil {
			uc.logger.Error("fetch candidates failed",
				zap.Int64("collection_id", col.ID),
				zap.Error(err),
			)
			continue
		}
		uc.logger.Info("collection scan",
			zap.String("collection", col.Title),
			zap.Int("candidates", len(candidates)),
		)

		for _, bm := range candidates {
			if uc.limitReached(processed) {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			record, err := uc.history.Find(ctx, bm.ID)
			if err != nil {
				return fmt.Errorf("read history for bookmark %d: %w", bm.ID, err)
			}
			if record != nil && record.Done() {
				continue
			}
			if record == nil {
				record = entity.NewProcessingRecord(bm.ID, uc.cfg.MaxRetries)
			}

			log := uc.logger.With(
				zap.Int64("bookmark_id", bm.ID),
				zap.String("title", bm.Title),
				zap.String("url", bm.Link),
			)
			log.Info("processing bookmark")

			if uc.cfg.DryRun {
				if uc.media.Verify(ctx, bm.Link) {
					log.Info("[dry run] url is valid")
					processed++
				}
				continue
			}

			if !uc.media.Verify(ctx, bm.Link) {
				log.Warn("url not supported by extractor, skipping")
				continue
			}

			totalTimer := time.Now()
			if err := uc.processBookmark(ctx, bm, col, log); err != nil {
				uc.recordFailure(ctx, record, bm, err, log)
				continue
			}

			record.MarkCompleted()
			if err := uc.history.Save(ctx, record); err != nil {
				log.Error("failed to save history record", zap.Error(err))
			}
			metrics.BookmarksProcessedTotal.WithLabelValues("completed").Inc()
			metrics.StageDuration.WithLabelValues("total").Observe(time.Since(totalTimer).Seconds())
			processed++
		}
	}

	uc.logger.Info("run finished", zap.Int("processed", processed))
	return nil
}

func (uc *SummarizeUseCase) limitReached(processed int) bool {
	return uc.cfg.MaxItems > 0 && processed >= uc.cfg.MaxItems
}

func (uc *SummarizeUseCase) recordFailure(ctx context.Context, record *entity.ProcessingRecord, bm entity.Bookmark, cause error, log *zap.Logger) {
	log.Error("bookmark processing failed", zap.Error(cause))

	record.MarkFailed(cause.Error())
	if err := uc.history.Save(ctx, record); err != nil {
		log.Error("failed to save failure record", zap.Error(err))
	}

	if record.Exhausted() {
		metrics.BookmarksProcessedTotal.WithLabelValues("exhausted").Inc()
		if uc.notifier != nil {
			if err := uc.notifier.NotifyFailure(ctx, bm.Title, bm.Link, cause.Error()); err != nil {
				log.Error("failure notification failed", zap.Error(err))
			}
		}
		return
	}
	metrics.BookmarksProcessedTotal.WithLabelValues("failed").Inc()
}

func (uc *SummarizeUseCase) processBookmark(ctx context.Context, bm entity.Bookmark, col entity.Collection, log *zap.Logger) error {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "process_bookmark")
	span.SetAttributes(
		attribute.Int64("bookmark.id", bm.ID),
		attribute.String("bookmark.url", bm.Link),
	)
	defer span.End()

	// Fetch media
	fetchStart := time.Now()
	ctxFetch, spanFetch := tracer.Start(ctx, "fetch_media")
	media, err := uc.media.Fetch(ctxFetch, bm.Link)
	spanFetch.End()
	if err != nil {
		return fmt.Errorf("fetch media: %w", err)
	}
	metrics.StageDuration.WithLabelValues("fetch").Observe(time.Since(fetchStart).Seconds())

	if media.Transcript == "" && media.AudioPath == "" {
		return fmt.Errorf("no transcript or audio extracted for %s", bm.Link)
	}
	if media.AudioPath != "" {
		defer os.Remove(media.AudioPath)
	}

	// Highlight frames, best effort
	imagesMD, imagesHTML := "", ""
	if uc.directorEligible(media.Meta) {
		dirStart := time.Now()
		ctxDir, spanDir := tracer.Start(ctx, "director_mode")
		imagesMD, imagesHTML = uc.runDirectorMode(ctxDir, bm.Link, media, log)
		spanDir.End()
		metrics.StageDuration.WithLabelValues("director").Observe(time.Since(dirStart).Seconds())
	}

	// Summarize
	sumStart := time.Now()
	ctxSum, spanSum := tracer.Start(ctx, "summarize")
	var summary string
	if media.Transcript != "" {
		summary, err = uc.llm.SummarizeText(ctxSum, media.Transcript)
	} else {
		summary, err = uc.llm.SummarizeAudio(ctxSum, media.AudioPath)
	}
	spanSum.End()
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	metrics.StageDuration.WithLabelValues("summarize").Observe(time.Since(sumStart).Seconds())

	// Title
	aiTitle, err := uc.llm.GenerateTitle(ctx, summary, bm.Title)
	if err != nil || strings.TrimSpace(aiTitle) == "" {
		log.Warn("title generation failed, using bookmark title", zap.Error(err))
		aiTitle = bm.Title
	}
	digestTitle := entity.DigestTitle(aiTitle, media.Meta.Uploader, media.Meta.Duration)

	digest := entity.Digest{
		BookmarkID: bm.ID,
		Title:      digestTitle,
		SourceURL:  bm.Link,
		Author:     media.Meta.Uploader,
		Collection: col.Title,
		CoverURL:   bm.Cover,
		Markdown:   buildDigestMarkdown(bm.Title, bm.Link, media.Meta.Uploader, col.Title, imagesMD, summary),
	}

	// Persist local markdown
	if err := os.MkdirAll(uc.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	mdPath := filepath.Join(uc.cfg.OutputDir, digestTitle+".md")
	if err := os.WriteFile(mdPath, []byte(digest.Markdown), 0644); err != nil {
		return fmt.Errorf("write digest file: %w", err)
	}
	log.Info("digest saved", zap.String("path", mdPath))

	// Publish
	pubStart := time.Now()
	ctxPub, spanPub := tracer.Start(ctx, "publish")
	defer spanPub.End()

	summaryHTML, err := uc.renderer.Render(summary)
	if err != nil {
		return fmt.Errorf("render summary html: %w", err)
	}
	digest.HTML = buildDigestHTML(bm.Link, media.Meta.Uploader, col.Title, imagesHTML, summaryHTML)

	if err := uc.reader.SaveDigest(ctxPub, digest, []string{col.Title}); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	tags := appendUnique(bm.Tags, summarizedTag)
	if err := uc.bookmarks.UpdateTags(ctxPub, bm.ID, tags); err != nil {
		return fmt.Errorf("tag bookmark: %w", err)
	}
	metrics.StageDuration.WithLabelValues("publish").Observe(time.Since(pubStart).Seconds())

	return nil
}

func (uc *SummarizeUseCase) directorEligible(meta entity.VideoMeta) bool {
	return meta.VideoID != "" && meta.Duration > 0 && meta.Duration < uc.cfg.DirectorMaxDuration
}

// runDirectorMode asks the language model where the high-value visuals
// are, captures the sharpest frame near each cue and uploads the frames
// to object storage. Highlighting is enrichment: every failure in here
// degrades to zero images, never to a failed bookmark.
func (uc *SummarizeUseCase) runDirectorMode(ctx context.Context, url string, media entity.Media, log *zap.Logger) (imagesMD, imagesHTML string) {
	log.Info("entering ai director mode", zap.Float64("duration", media.Meta.Duration))

	var (
		cues      []entity.VisualCue
		videoPath string
		err       error
	)

	if timed := uc.media.TimedTranscript(media.Meta.VideoID); timed != "" {
		log.Info("analyzing transcript for visual cues")
		cues, err = uc.llm.AnalyzeVisualCues(ctx, timed)
		if err != nil {
			log.Warn("visual cue analysis failed", zap.Error(err))
			return "", ""
		}
		if len(cues) > 0 {
			log.Info("cues found, downloading video", zap.Int("cues", len(cues)))
			videoPath, err = uc.media.DownloadVideo(ctx, url, media.Meta.VideoID)
			if err != nil {
				log.Warn("video download failed", zap.Error(err))
				return "", ""
			}
		}
	} else {
		log.Info("no transcript, downloading video for visual analysis")
		videoPath, err = uc.media.DownloadVideo(ctx, url, media.Meta.VideoID)
		if err != nil {
			log.Warn("video download failed", zap.Error(err))
			return "", ""
		}
		cues, err = uc.llm.AnalyzeVideoCues(ctx, videoPath)
		if err != nil {
			log.Warn("video cue analysis failed", zap.Error(err))
			cues = nil
		}
	}
	if videoPath != "" {
		defer os.Remove(videoPath)
	}
	metrics.CuesProposedTotal.Add(float64(len(cues)))
	log.Info("director decision", zap.Int("cues", len(cues)))

	if len(cues) == 0 || videoPath == "" {
		return "", ""
	}

	framesDir := filepath.Join(uc.cfg.OutputDir, "images", media.Meta.VideoID)
	frames, err := uc.frames.SelectFrames(ctx, videoPath, cues, framesDir)
	if err != nil {
		// Open failures and shutdown are the quiet, expected kinds; write
		// failures point at the environment and deserve a loud log.
		switch {
		case errors.Is(err, port.ErrMediaOpen):
			log.Warn("video could not be opened for frame capture", zap.Error(err))
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			log.Warn("frame capture interrupted", zap.Error(err))
		default:
			log.Error("frame capture failed", zap.Error(err))
		}
	}
	if len(frames) == 0 {
		return "", ""
	}
	metrics.FramesSelectedTotal.Add(float64(len(frames)))
	log.Info("captured frames", zap.Int("count", len(frames)))

	urls := uc.publishFrames(ctx, frames, log)
	return buildHighlightBlocks(urls)
}

// publishFrames uploads each frame keyed by content hash (dedup across
// runs) and removes the local copy once it is safely remote. Without
// object storage the local relative path is linked instead.
func (uc *SummarizeUseCase) publishFrames(ctx context.Context, frames []entity.SelectedFrame, log *zap.Logger) []string {
	urls := make([]string, 0, len(frames))
	for _, frame := range frames {
		link, err := filepath.Rel(uc.cfg.OutputDir, frame.FilePath)
		if err != nil {
			link = frame.FilePath
		}

		if uc.images != nil {
			data, err := os.ReadFile(frame.FilePath)
			if err != nil {
				log.Error("read frame for upload", zap.String("path", frame.FilePath), zap.Error(err))
				urls = append(urls, link)
				continue
			}
			hash := md5.Sum(data)
			key := "images/" + hex.EncodeToString(hash[:]) + ".jpg"

			publicURL, err := uc.images.Upload(ctx, frame.FilePath, key)
			if err != nil {
				log.Error("frame upload failed", zap.String("key", key), zap.Error(err))
			} else {
				link = publicURL
				os.Remove(frame.FilePath)
				metrics.FramesUploadedTotal.Inc()
			}
		}
		urls = append(urls, link)
	}
	return urls
}

func buildDigestMarkdown(rawTitle, url, author, collection, imagesMD, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n**Source**: %s\n**Author**: %s\n**Collection**: %s\n", rawTitle, url, author, collection)
	if imagesMD != "" {
		b.WriteString(imagesMD)
	}
	b.WriteString("\n")
	b.WriteString(summary)
	return b.String()
}

func buildDigestHTML(url, author, collection, imagesHTML, summaryHTML string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p><strong>Source:</strong> <a href="%s">%s</a></p>`, url, url)
	fmt.Fprintf(&b, `<p><strong>Author:</strong> %s</p>`, author)
	fmt.Fprintf(&b, `<p><strong>Collection:</strong> %s</p><hr>`, collection)
	if imagesHTML != "" {
		b.WriteString(imagesHTML)
	}
	b.WriteString(summaryHTML)
	return b.String()
}

// buildHighlightBlocks renders the captured frame links for both output
// formats: Markdown for the local digest, HTML for the reader service.
func buildHighlightBlocks(urls []string) (string, string) {
	if len(urls) == 0 {
		return "", ""
	}

	var md, html strings.Builder
	md.WriteString("\n\n## 🎬 Visual Highlights\n")
	html.WriteString("<h3>🎬 Visual Highlights</h3>")
	for _, u := range urls {
		fmt.Fprintf(&md, "![Key Frame](%s)\n", u)
		fmt.Fprintf(&html, `<img src="%s" alt="Key Frame" style="max-width:100%%; margin-top:10px; border-radius:8px;"><br>`, u)
	}
	html.WriteString("<hr>")
	return md.String(), html.String()
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(append([]string{}, tags...), tag)
}
