package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVideoCandidate(t *testing.T) {
	tests := []struct {
		name string
		bm   Bookmark
		want bool
	}{
		{"raindrop typed video", Bookmark{Type: "video", Link: "https://example.com/x"}, true},
		{"youtube watch", Bookmark{Link: "https://www.youtube.com/watch?v=abc"}, true},
		{"youtube short link", Bookmark{Link: "https://youtu.be/abc"}, true},
		{"vimeo", Bookmark{Link: "https://vimeo.com/12345"}, true},
		{"tiktok", Bookmark{Link: "https://www.tiktok.com/@user/video/1"}, true},
		{"twitch", Bookmark{Link: "https://www.twitch.tv/videos/1"}, true},
		{"instagram reel", Bookmark{Link: "https://www.instagram.com/reel/xyz/"}, true},
		{"instagram profile", Bookmark{Link: "https://www.instagram.com/someone/"}, false},
		{"facebook reel", Bookmark{Link: "https://www.facebook.com/reel/123"}, true},
		{"facebook watch", Bookmark{Link: "https://www.facebook.com/watch?v=123"}, true},
		{"facebook share video", Bookmark{Link: "https://www.facebook.com/share/v/abc/"}, true},
		{"facebook profile", Bookmark{Link: "https://www.facebook.com/someone"}, false},
		{"plain article", Bookmark{Link: "https://blog.example.com/post", Type: "article"}, false},
		{"unparseable url", Bookmark{Link: "://not-a-url"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bm.IsVideoCandidate())
		})
	}
}

func TestClassificationText(t *testing.T) {
	assert.Equal(t, "excerpt", Bookmark{Excerpt: "excerpt", Note: "note"}.ClassificationText())
	assert.Equal(t, "note", Bookmark{Note: "note"}.ClassificationText())
	assert.Equal(t, "", Bookmark{}.ClassificationText())
}
