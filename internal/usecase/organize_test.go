package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

func newOrganizeFixture() (*fakeBookmarks, *fakeLLM) {
	bookmarks := newFakeBookmarks()
	bookmarks.collections = []entity.Collection{
		{ID: 10, Title: "AI"},
		{ID: 20, Title: "Cooking"},
	}
	bookmarks.bookmarks[entity.UnsortedCollectionID] = []entity.Bookmark{
		{ID: 1, Title: "GPT architecture deep dive", Excerpt: "transformers"},
		{ID: 2, Title: "Perfect sourdough", Note: "bread recipe"},
		{ID: 3, Title: "Random link"},
	}

	llm := &fakeLLM{classified: map[string]int64{
		"GPT architecture deep dive": 10,
		"Perfect sourdough":          20,
		"Random link":                0,
	}}
	return bookmarks, llm
}

func organizeConfig() OrganizeConfig {
	return OrganizeConfig{PerPage: 50, MoveDelay: time.Millisecond}
}

func TestOrganizeMovesClassifiedBookmarks(t *testing.T) {
	bookmarks, llm := newOrganizeFixture()

	uc := NewOrganizeUseCase(bookmarks, llm, zap.NewNop(), organizeConfig())
	require.NoError(t, uc.Execute(context.Background()))

	assert.Equal(t, map[int64]int64{1: 10, 2: 20}, bookmarks.moves)
}

func TestOrganizeLeavesUnclassifiableAlone(t *testing.T) {
	bookmarks, llm := newOrganizeFixture()

	uc := NewOrganizeUseCase(bookmarks, llm, zap.NewNop(), organizeConfig())
	require.NoError(t, uc.Execute(context.Background()))

	_, moved := bookmarks.moves[3]
	assert.False(t, moved)
}

func TestOrganizeIgnoresUnknownCollectionIDs(t *testing.T) {
	bookmarks, llm := newOrganizeFixture()
	// The model hallucinating an ID that does not exist must not move anything.
	llm.classified["Random link"] = 999

	uc := NewOrganizeUseCase(bookmarks, llm, zap.NewNop(), organizeConfig())
	require.NoError(t, uc.Execute(context.Background()))

	_, moved := bookmarks.moves[3]
	assert.False(t, moved)
}

func TestOrganizeDryRunMovesNothing(t *testing.T) {
	bookmarks, llm := newOrganizeFixture()
	cfg := organizeConfig()
	cfg.DryRun = true

	uc := NewOrganizeUseCase(bookmarks, llm, zap.NewNop(), cfg)
	require.NoError(t, uc.Execute(context.Background()))

	assert.Empty(t, bookmarks.moves)
}

func TestOrganizeClassificationErrorSkipsBookmark(t *testing.T) {
	bookmarks, llm := newOrganizeFixture()
	llm.classifyErr = errors.New("quota exceeded")

	uc := NewOrganizeUseCase(bookmarks, llm, zap.NewNop(), organizeConfig())
	require.NoError(t, uc.Execute(context.Background()))

	assert.Empty(t, bookmarks.moves)
}

func TestOrganizeMaxItemsLimitsMoves(t *testing.T) {
	bookmarks, llm := newOrganizeFixture()
	cfg := organizeConfig()
	cfg.MaxItems = 1

	uc := NewOrganizeUseCase(bookmarks, llm, zap.NewNop(), cfg)
	require.NoError(t, uc.Execute(context.Background()))

	assert.Len(t, bookmarks.moves, 1)
}

func TestOrganizeNoCollectionsIsNoop(t *testing.T) {
	bookmarks, llm := newOrganizeFixture()
	bookmarks.collections = nil

	uc := NewOrganizeUseCase(bookmarks, llm, zap.NewNop(), organizeConfig())
	require.NoError(t, uc.Execute(context.Background()))

	assert.Empty(t, bookmarks.moves)
}
