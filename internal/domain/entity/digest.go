package entity

import (
	"fmt"
	"strings"
	"unicode"
)

// ShortVideoCutoff separates [Short] digests from [Video] digests, in seconds.
const ShortVideoCutoff = 480.0

const maxDigestTitleLen = 100

// Digest is the finished summary for one bookmark, ready to persist
// locally and publish to the reader service.
type Digest struct {
	BookmarkID int64
	Title      string
	SourceURL  string
	Author     string
	Collection string
	CoverURL   string
	Markdown   string
	HTML       string
	Frames     []SelectedFrame
}

// DigestTitle builds the display/file title: a duration-based type prefix,
// the sanitized AI title and uploader, truncated to a filesystem-safe length.
func DigestTitle(aiTitle, uploader string, duration float64) string {
	prefix := "[Short]"
	if duration > ShortVideoCutoff {
		prefix = "[Video]"
	}

	title := fmt.Sprintf("%s %s - %s", prefix, SanitizeTitle(aiTitle), SanitizeTitle(uploader))
	runes := []rune(title)
	if len(runes) > maxDigestTitleLen {
		title = string(runes[:maxDigestTitleLen])
	}
	return title
}

// SanitizeTitle strips everything but letters, digits, spaces, hyphens
// and underscores so the result is safe as part of a filename.
func SanitizeTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
