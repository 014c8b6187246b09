package entity

import (
	"net/url"
	"strings"
)

// UnsortedCollectionID is the Raindrop pseudo-collection holding
// bookmarks that have not been filed anywhere yet.
const UnsortedCollectionID int64 = -1

type Collection struct {
	ID    int64
	Title string
}

type Bookmark struct {
	ID           int64
	CollectionID int64
	Title        string
	Link         string
	Excerpt      string
	Note         string
	Cover        string
	Type         string
	Tags         []string
}

var videoDomains = []string{
	"youtube.com", "youtu.be",
	"vimeo.com",
	"tiktok.com",
	"dailymotion.com",
	"twitch.tv",
}

// IsVideoCandidate reports whether the bookmark likely points at a video:
// either Raindrop classified it as one, or its URL belongs to a known
// video site. Instagram and Facebook videos are often saved as plain
// links, so those get path-level checks.
func (b Bookmark) IsVideoCandidate() bool {
	if b.Type == "video" {
		return true
	}

	u, err := url.Parse(b.Link)
	if err != nil {
		return false
	}
	domain := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)

	for _, d := range videoDomains {
		if strings.Contains(domain, d) {
			return true
		}
	}

	if strings.Contains(domain, "instagram.com") && strings.Contains(path, "/reel/") {
		return true
	}
	if strings.Contains(domain, "facebook.com") {
		for _, p := range []string{"/reel/", "/watch", "/videos/", "/share/v/"} {
			if strings.Contains(path, p) {
				return true
			}
		}
	}

	return false
}

// ClassificationText is what the organizer feeds the language model:
// the bookmark's excerpt, falling back to its note.
func (b Bookmark) ClassificationText() string {
	if b.Excerpt != "" {
		return b.Excerpt
	}
	return b.Note
}
