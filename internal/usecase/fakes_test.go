package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

type fakeBookmarks struct {
	collections []entity.Collection
	bookmarks   map[int64][]entity.Bookmark

	updatedTags map[int64][]string
	moves       map[int64]int64
	moveErr     error
}

func newFakeBookmarks() *fakeBookmarks {
	return &fakeBookmarks{
		bookmarks:   map[int64][]entity.Bookmark{},
		updatedTags: map[int64][]string{},
		moves:       map[int64]int64{},
	}
}

func (f *fakeBookmarks) Collections(ctx context.Context) ([]entity.Collection, error) {
	return f.collections, nil
}

func (f *fakeBookmarks) Bookmarks(ctx context.Context, collectionID int64, perPage int) ([]entity.Bookmark, error) {
	return clampPage(f.bookmarks[collectionID], perPage), nil
}

func (f *fakeBookmarks) VideoCandidates(ctx context.Context, collectionID int64, perPage int) ([]entity.Bookmark, error) {
	var out []entity.Bookmark
	for _, b := range clampPage(f.bookmarks[collectionID], perPage) {
		if b.IsVideoCandidate() {
			out = append(out, b)
		}
	}
	return out, nil
}

// clampPage mimics the API's perpage parameter so tests see the same
// fetch-window behavior as the real client.
func clampPage(items []entity.Bookmark, perPage int) []entity.Bookmark {
	if perPage > 0 && len(items) > perPage {
		return items[:perPage]
	}
	return items
}

func (f *fakeBookmarks) UpdateTags(ctx context.Context, bookmarkID int64, tags []string) error {
	f.updatedTags[bookmarkID] = tags
	return nil
}

func (f *fakeBookmarks) Move(ctx context.Context, bookmarkID, collectionID int64) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moves[bookmarkID] = collectionID
	return nil
}

type savedDigest struct {
	digest entity.Digest
	tags   []string
}

type fakeReader struct {
	saved []savedDigest
	err   error
}

func (f *fakeReader) SaveDigest(ctx context.Context, digest entity.Digest, tags []string) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, savedDigest{digest: digest, tags: tags})
	return nil
}

type fakeLLM struct {
	summary      string
	summaryErr   error
	title        string
	titleErr     error
	cues         []entity.VisualCue
	cuesErr      error
	videoCues    []entity.VisualCue
	classified   map[string]int64
	classifyErr  error
	audioSummary string
}

func (f *fakeLLM) SummarizeText(ctx context.Context, transcript string) (string, error) {
	return f.summary, f.summaryErr
}

func (f *fakeLLM) SummarizeAudio(ctx context.Context, audioPath string) (string, error) {
	if f.audioSummary != "" {
		return f.audioSummary, nil
	}
	return f.summary, f.summaryErr
}

func (f *fakeLLM) AnalyzeVisualCues(ctx context.Context, timedTranscript string) ([]entity.VisualCue, error) {
	return f.cues, f.cuesErr
}

func (f *fakeLLM) AnalyzeVideoCues(ctx context.Context, videoPath string) ([]entity.VisualCue, error) {
	return f.videoCues, nil
}

func (f *fakeLLM) GenerateTitle(ctx context.Context, summary, originalTitle string) (string, error) {
	return f.title, f.titleErr
}

func (f *fakeLLM) Classify(ctx context.Context, title, note string, collections []entity.Collection) (int64, error) {
	if f.classifyErr != nil {
		return 0, f.classifyErr
	}
	return f.classified[title], nil
}

type fakeMedia struct {
	verify     bool
	media      entity.Media
	fetchErr   error
	timed      string
	videoPath  string
	dlErr      error
	fetchCalls int
	dlCalls    int
}

func (f *fakeMedia) Verify(ctx context.Context, url string) bool { return f.verify }

func (f *fakeMedia) Fetch(ctx context.Context, url string) (entity.Media, error) {
	f.fetchCalls++
	return f.media, f.fetchErr
}

func (f *fakeMedia) TimedTranscript(videoID string) string { return f.timed }

func (f *fakeMedia) DownloadVideo(ctx context.Context, url, videoID string) (string, error) {
	f.dlCalls++
	return f.videoPath, f.dlErr
}

type fakeFrames struct {
	frames []entity.SelectedFrame
	err    error
	calls  int
}

func (f *fakeFrames) SelectFrames(ctx context.Context, videoPath string, cues []entity.VisualCue, outputDir string) ([]entity.SelectedFrame, error) {
	f.calls++
	return f.frames, f.err
}

type fakeHistory struct {
	records map[int64]*entity.ProcessingRecord
	saves   int
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{records: map[int64]*entity.ProcessingRecord{}}
}

func (f *fakeHistory) Find(ctx context.Context, bookmarkID int64) (*entity.ProcessingRecord, error) {
	rec, ok := f.records[bookmarkID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeHistory) Save(ctx context.Context, record *entity.ProcessingRecord) error {
	cp := *record
	f.records[record.BookmarkID] = &cp
	f.saves++
	return nil
}

type notified struct {
	title, url, errMsg string
}

type fakeNotifier struct {
	calls []notified
}

func (f *fakeNotifier) NotifyFailure(ctx context.Context, bookmarkTitle, url, errorMsg string) error {
	f.calls = append(f.calls, notified{title: bookmarkTitle, url: url, errMsg: errorMsg})
	return nil
}

type fakeStorage struct {
	uploads  map[string]string
	cleanups []time.Duration
	err      error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string]string{}}
}

func (f *fakeStorage) Upload(ctx context.Context, localPath, objectKey string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	url := "https://img.example.com/" + objectKey
	f.uploads[objectKey] = localPath
	return url, nil
}

func (f *fakeStorage) CleanupOlderThan(ctx context.Context, retention time.Duration) error {
	f.cleanups = append(f.cleanups, retention)
	return f.err
}

type passthroughRenderer struct{}

func (passthroughRenderer) Render(markdown string) (string, error) {
	return fmt.Sprintf("<p>%s</p>", markdown), nil
}
