package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/metrics"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/video"
)

type FaceLocalizer interface {
	Locate(ctx context.Context, frame domain.Frame) ([]domain.FaceCrop, error)
}

type EmotionClassifier interface {
	Classify(ctx context.Context, crop domain.FaceCrop) domain.EmotionLabel
}

// FrameObserver is called after each frame has been fully processed.
type FrameObserver func(frame domain.Frame, faces int)

type AnalysisService struct {
	frames          video.FrameSource
	localizer       FaceLocalizer
	classifier      EmotionClassifier
	logger          *slog.Logger
	metrics         *metrics.Metrics
	strictVideoPath bool
	observer        FrameObserver
}

func NewAnalysisService(
	frames video.FrameSource,
	localizer FaceLocalizer,
	classifier EmotionClassifier,
	logger *slog.Logger,
	m *metrics.Metrics,
) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		frames:     frames,
		localizer:  localizer,
		classifier: classifier,
		logger:     logger,
		metrics:    m,
	}
}

// WithStrictVideoPath makes Analyze fail with ErrVideoNotFound when the
// path does not name a regular file, instead of scoring it 0.
func (s *AnalysisService) WithStrictVideoPath(strict bool) *AnalysisService {
	s.strictVideoPath = strict
	return s
}

func (s *AnalysisService) WithFrameObserver(observer FrameObserver) *AnalysisService {
	s.observer = observer
	return s
}

// Analyze scores the faces in a video. Frames are extracted, localized and
// classified one at a time; per-face failures count as unknown.
func (s *AnalysisService) Analyze(ctx context.Context, videoPath string) (*domain.Analysis, error) {
	start := time.Now()
	analysis := &domain.Analysis{ID: uuid.New()}
	logger := s.logger.With("analysis_id", analysis.ID.String(), "video_path", videoPath)

	result, err := s.analyze(ctx, videoPath, analysis, logger)
	analysis.Duration = time.Since(start)

	if err != nil {
		s.metrics.AnalysisFinished(metrics.OutcomeError, analysis.Duration)
		logger.ErrorContext(ctx, "video analysis failed",
			"frames", analysis.Frames,
			"faces", analysis.Faces,
			"error", err,
			"duration", analysis.Duration,
		)
		return nil, err
	}

	s.metrics.AnalysisFinished(metrics.OutcomeSuccess, analysis.Duration)
	return result, nil
}

func (s *AnalysisService) analyze(ctx context.Context, videoPath string, analysis *domain.Analysis, logger *slog.Logger) (*domain.Analysis, error) {
	if s.strictVideoPath {
		if err := checkVideoPath(videoPath); err != nil {
			return nil, err
		}
	}

	var localizeTime, classifyTime time.Duration
	labels := make([]domain.EmotionLabel, 0)

	for frame, err := range s.frames.Frames(ctx, videoPath) {
		if err != nil {
			return nil, fmt.Errorf("extract frames: %w", err)
		}
		analysis.Frames++
		s.metrics.FrameExtracted()

		t := time.Now()
		crops, err := s.localizer.Locate(ctx, frame)
		localizeTime += time.Since(t)
		if err != nil {
			return nil, fmt.Errorf("localize faces: %w", err)
		}
		analysis.Faces += len(crops)
		s.metrics.FacesDetected(len(crops))

		t = time.Now()
		for _, crop := range crops {
			labels = append(labels, s.classifier.Classify(ctx, crop))
		}
		classifyTime += time.Since(t)

		if s.observer != nil {
			s.observer(frame, len(crops))
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	analysis.Labels = labels
	analysis.Tally = domain.NewTally(labels)
	analysis.Score = domain.ConfidenceScore(labels)

	logger.InfoContext(ctx, "video analyzed",
		"frames", analysis.Frames,
		"faces", analysis.Faces,
		"tally", analysis.Tally,
		"confidence_level", analysis.Score,
		"localize_time", localizeTime,
		"classify_time", classifyTime,
	)

	return analysis, nil
}

func checkVideoPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrVideoNotFound.WithError(err)
		}
		return domain.ErrVideoNotFound.WithError(fmt.Errorf("stat %s: %w", path, err))
	}
	if info.IsDir() {
		return domain.ErrVideoNotFound.WithError(fmt.Errorf("%s is a directory", path))
	}
	return nil
}
