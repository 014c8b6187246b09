package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
	"github.com/hackerpeanutjohn/RainDigest/internal/domain/port"
	"github.com/hackerpeanutjohn/RainDigest/internal/infra/metrics"
)

type OrganizeConfig struct {
	PerPage  int
	MaxItems int
	DryRun   bool
	// Pause between moves so the bookmark API is not hammered.
	MoveDelay time.Duration
}

// OrganizeUseCase files unsorted bookmarks into existing collections.
// The language model plays librarian: it sees the bookmark's title and
// description plus the collection list, and either names a collection
// or passes.
type OrganizeUseCase struct {
	bookmarks port.BookmarkService
	llm       port.LanguageModel
	logger    *zap.Logger
	cfg       OrganizeConfig
}

func NewOrganizeUseCase(bookmarks port.BookmarkService, llm port.LanguageModel, logger *zap.Logger, cfg OrganizeConfig) *OrganizeUseCase {
	if cfg.PerPage == 0 {
		cfg.PerPage = 50
	}
	if cfg.MoveDelay == 0 {
		cfg.MoveDelay = time.Second
	}
	return &OrganizeUseCase{
		bookmarks: bookmarks,
		llm:       llm,
		logger:    logger,
		cfg:       cfg,
	}
}

// Execute classifies one page of unsorted bookmarks. Bookmarks the model
// cannot place stay in Unsorted; a later manual pass or a richer
// collection set will catch them.
func (uc *OrganizeUseCase) Execute(ctx context.Context) error {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "OrganizeUseCase.Execute")
	defer span.End()

	collections, err := uc.bookmarks.Collections(ctx)
	if err != nil {
		return fmt.Errorf("fetch collections: %w", err)
	}
	if len(collections) == 0 {
		uc.logger.Warn("no collections exist, nothing to organize into")
		return nil
	}
	byID := make(map[int64]entity.Collection, len(collections))
	for _, c := range collections {
		byID[c.ID] = c
	}

	unsorted, err := uc.bookmarks.Bookmarks(ctx, entity.UnsortedCollectionID, uc.cfg.PerPage)
	if err != nil {
		return fmt.Errorf("fetch unsorted bookmarks: %w", err)
	}
	uc.logger.Info("scanning unsorted bookmarks",
		zap.Int("count", len(unsorted)),
		zap.Int("collections", len(collections)),
	)

	moved := 0
	for _, bm := range unsorted {
		if uc.cfg.MaxItems > 0 && moved >= uc.cfg.MaxItems {
			uc.logger.Info("reached max items, stopping", zap.Int("max_items", uc.cfg.MaxItems))
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		log := uc.logger.With(
			zap.Int64("bookmark_id", bm.ID),
			zap.String("title", bm.Title),
		)

		ctxCls, spanCls := tracer.Start(ctx, "classify_bookmark")
		spanCls.SetAttributes(attribute.Int64("bookmark.id", bm.ID))
		targetID, err := uc.llm.Classify(ctxCls, bm.Title, bm.ClassificationText(), collections)
		spanCls.End()
		if err != nil {
			log.Error("classification failed", zap.Error(err))
			metrics.OrganizerMovesTotal.WithLabelValues("error").Inc()
			continue
		}

		target, ok := byID[targetID]
		if targetID == 0 || !ok {
			log.Info("no fitting collection, leaving unsorted")
			metrics.OrganizerMovesTotal.WithLabelValues("skipped").Inc()
			continue
		}

		if uc.cfg.DryRun {
			log.Info("[dry run] would move bookmark", zap.String("collection", target.Title))
			moved++
			continue
		}

		if err := uc.bookmarks.Move(ctx, bm.ID, target.ID); err != nil {
			log.Error("move failed", zap.String("collection", target.Title), zap.Error(err))
			metrics.OrganizerMovesTotal.WithLabelValues("error").Inc()
			continue
		}
		log.Info("bookmark filed", zap.String("collection", target.Title))
		metrics.OrganizerMovesTotal.WithLabelValues("moved").Inc()
		moved++

		select {
		case <-time.After(uc.cfg.MoveDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	uc.logger.Info("organizer run finished", zap.Int("moved", moved))
	return nil
}
