package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookmarksProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raindigest_bookmarks_processed_total",
		Help: "Total number of bookmarks processed, by outcome",
	}, []string{"outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "raindigest_stage_duration_seconds",
		Help:    "Duration of pipeline stages per bookmark",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})

	CuesProposedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raindigest_visual_cues_proposed_total",
		Help: "Total number of visual cues the language model proposed",
	})

	FramesSelectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raindigest_frames_selected_total",
		Help: "Total number of highlight frames captured",
	})

	FramesUploadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raindigest_frames_uploaded_total",
		Help: "Total number of highlight frames uploaded to object storage",
	})

	OrganizerMovesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raindigest_organizer_moves_total",
		Help: "Total number of organizer decisions, by outcome",
	}, []string{"outcome"})
)
