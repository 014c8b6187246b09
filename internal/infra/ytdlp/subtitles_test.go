package ytdlp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:03.500
hello and welcome

00:00:03.500 --> 00:00:06.000
hello and welcome

00:01:02.500 --> 00:01:05.000 align:start position:0%
look at this chart
`

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
first line

2
00:00:04,000 --> 00:00:06,000
second line
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSubtitleFilePlain(t *testing.T) {
	path := writeTemp(t, "abc.en.vtt", sampleVTT)

	got, err := parseSubtitleFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, "hello and welcome\nlook at this chart", got)
}

func TestParseSubtitleFileTimed(t *testing.T) {
	path := writeTemp(t, "abc.en.vtt", sampleVTT)

	got, err := parseSubtitleFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, "[1.0s] hello and welcome\n[62.5s] look at this chart", got)
}

func TestParseSubtitleFileSRT(t *testing.T) {
	path := writeTemp(t, "abc.en.srt", sampleSRT)

	got, err := parseSubtitleFile(path, false)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line", got)

	timed, err := parseSubtitleFile(path, true)
	require.NoError(t, err)
	assert.Equal(t, "[1.0s] first line\n[4.0s] second line", timed)
}

func TestParseCueStart(t *testing.T) {
	assert.InDelta(t, 62.5, parseCueStart("00:01:02.500 --> 00:01:05.000"), 1e-9)
	assert.InDelta(t, 62.5, parseCueStart("00:01:02,500 --> 00:01:05,000"), 1e-9)
	assert.InDelta(t, 75.0, parseCueStart("01:15.000 --> 01:20.000"), 1e-9)
	assert.Equal(t, -1.0, parseCueStart("garbage --> more"))
}

func TestFindSubtitleFilePriority(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid1.en.vtt"), []byte(sampleVTT), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid1.zh-Hant.vtt"), []byte(sampleVTT), 0o644))

	f := &Fetcher{dataDir: dir, subLangs: []string{"zh-Hant", "zh-Hans", "zh", "en"}}
	assert.Equal(t, filepath.Join(dir, "vid1.zh-Hant.vtt"), f.findSubtitleFile("vid1"))
	assert.Equal(t, "", f.findSubtitleFile("missing"))
}

func TestUploaderName(t *testing.T) {
	assert.Equal(t, "Alice", videoInfo{Uploader: "Alice"}.uploaderName())
	assert.Equal(t, "ChanA", videoInfo{Channel: "ChanA"}.uploaderName())
	assert.Equal(t, "Unknown", videoInfo{}.uploaderName())
}
