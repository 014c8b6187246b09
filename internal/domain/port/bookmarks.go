package port

import (
	"context"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

// BookmarkService is the bookmarking backend (Raindrop).
type BookmarkService interface {
	// Collections returns every collection, roots and nested alike.
	Collections(ctx context.Context) ([]entity.Collection, error)

	// Bookmarks returns the newest bookmarks in a collection, unfiltered.
	Bookmarks(ctx context.Context, collectionID int64, perPage int) ([]entity.Bookmark, error)

	// VideoCandidates returns the bookmarks in a collection that likely
	// point at videos, newest first.
	VideoCandidates(ctx context.Context, collectionID int64, perPage int) ([]entity.Bookmark, error)

	// UpdateTags replaces the bookmark's tag set.
	UpdateTags(ctx context.Context, bookmarkID int64, tags []string) error

	// Move files the bookmark into another collection.
	Move(ctx context.Context, bookmarkID, collectionID int64) error
}
