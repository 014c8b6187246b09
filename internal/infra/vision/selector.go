package vision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
	"github.com/hackerpeanutjohn/RainDigest/internal/domain/port"
)

const reasonSlugMaxLen = 20

type Config struct {
	// ProbeOffsets are sampled relative to each cue's target time. A cue
	// often lands mid slide-transition, so probing slightly later tends
	// to catch the settled, highest-contrast frame.
	ProbeOffsets []float64

	// Canny thresholds on the 8-bit gradient-magnitude scale.
	EdgeLowThreshold  float64
	EdgeHighThreshold float64
}

func DefaultConfig() Config {
	return Config{
		ProbeOffsets:      []float64{0, 1.0, 1.5},
		EdgeLowThreshold:  100,
		EdgeHighThreshold: 200,
	}
}

// Selector picks the sharpest frame near each visual cue. It scores
// decoded frames by edge density: the mean intensity of the Canny edge
// map of the grayscale frame. Dense edges mean text, chart lines or UI
// chrome; a talking head against a plain wall scores low.
type Selector struct {
	cfg    Config
	logger *zap.Logger
}

func NewSelector(cfg Config, logger *zap.Logger) *Selector {
	if len(cfg.ProbeOffsets) == 0 {
		cfg.ProbeOffsets = DefaultConfig().ProbeOffsets
	}
	return &Selector{cfg: cfg, logger: logger}
}

// SelectFrames processes cues strictly in input order, one decoder handle
// for the whole call. Cues whose probes all fail to decode are dropped
// without affecting the others; only a JPEG write failure aborts the call.
func (s *Selector) SelectFrames(ctx context.Context, videoPath string, cues []entity.VisualCue, outputDir string) ([]entity.SelectedFrame, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}

	capture, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", port.ErrMediaOpen, videoPath, err)
	}
	defer capture.Close()

	frame := gocv.NewMat()
	defer frame.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	edges := gocv.NewMat()
	defer edges.Close()

	selected := make([]entity.SelectedFrame, 0, len(cues))

	for _, cue := range cues {
		select {
		case <-ctx.Done():
			return selected, ctx.Err()
		default:
		}

		best, bestTime, ok := s.probeCue(capture, &frame, &gray, &edges, cue)
		if !ok {
			s.logger.Debug("no frame decoded for cue",
				zap.Float64("target_time", cue.TargetTime),
				zap.String("reason", cue.Reason),
			)
			continue
		}

		path := filepath.Join(outputDir, frameFileName(bestTime, cue.Reason))
		wrote := gocv.IMWrite(path, best)
		best.Close()
		if !wrote {
			return selected, fmt.Errorf("write frame %s", path)
		}

		selected = append(selected, entity.SelectedFrame{
			BestTime: bestTime,
			Reason:   cue.Reason,
			FilePath: path,
		})
	}

	return selected, nil
}

// probeCue seeks to each configured offset, scores what decodes, and
// returns a clone of the strictly best frame. Ties keep the earliest
// offset. ok is false when every probe missed.
func (s *Selector) probeCue(capture *gocv.VideoCapture, frame, gray, edges *gocv.Mat, cue entity.VisualCue) (gocv.Mat, float64, bool) {
	var (
		mats   []gocv.Mat
		times  []float64
		scores []float64
	)

	for _, offset := range s.cfg.ProbeOffsets {
		t := cue.TargetTime + offset
		capture.Set(gocv.VideoCapturePosMsec, t*1000)
		if ok := capture.Read(frame); !ok || frame.Empty() {
			continue
		}

		mats = append(mats, frame.Clone())
		times = append(times, t)
		scores = append(scores, s.edgeDensity(*frame, gray, edges))
	}

	idx, ok := bestIndex(scores)
	if !ok {
		return gocv.Mat{}, 0, false
	}
	for i := range mats {
		if i != idx {
			mats[i].Close()
		}
	}
	return mats[idx], times[idx], true
}

// bestIndex returns the index of the strictly highest score. Ties keep
// the first-seen entry, i.e. the smallest probe offset.
func bestIndex(scores []float64) (int, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best, true
}

func (s *Selector) edgeDensity(src gocv.Mat, gray, edges *gocv.Mat) float64 {
	gocv.CvtColor(src, gray, gocv.ColorBGRToGray)
	gocv.Canny(*gray, edges, float32(s.cfg.EdgeLowThreshold), float32(s.cfg.EdgeHighThreshold))
	return edges.Mean().Val1
}

// frameFileName embeds the truncated integer second and a short slug of
// the cue's reason, keeping names human-traceable and short.
func frameFileName(t float64, reason string) string {
	return fmt.Sprintf("%d_%s.jpg", int(t), reasonSlug(reason))
}

// reasonSlug keeps only letters and digits, capped at 20 runes.
func reasonSlug(reason string) string {
	var b strings.Builder
	n := 0
	for _, r := range reason {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(r)
		n++
		if n == reasonSlugMaxLen {
			break
		}
	}
	return b.String()
}
