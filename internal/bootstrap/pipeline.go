// Package bootstrap assembles the analysis pipeline from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/config"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/emotion"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/face"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/metrics"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/opencv"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/service"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/video"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/vision"
)

// Version is overridden at build time with -ldflags "-X ...bootstrap.Version=..."
var Version = "dev"

// Frame source names accepted in FRAME_SOURCE
const (
	FrameSourceFFmpeg = "ffmpeg"
	FrameSourceOpenCV = "opencv"
)

// Pipeline owns the long-lived pieces of the analysis pipeline.
type Pipeline struct {
	Service *service.AnalysisService

	cfg      *config.Config
	detector *opencv.CascadeDetector
	provider provider.EmotionProvider
}

// pinger is implemented by emotion providers backed by a remote server.
type pinger interface {
	Ping(ctx context.Context) error
}

// NewPipeline builds the frame source, face detector, emotion provider and
// analysis service described by cfg. m may be nil.
func NewPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*Pipeline, error) {
	frames, err := NewFrameSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	cascade, err := opencv.LocateCascade(cfg.CascadePath)
	if err != nil {
		return nil, fmt.Errorf("create face detector: %w", err)
	}

	detector, err := opencv.NewCascadeDetector(cascade)
	if err != nil {
		return nil, fmt.Errorf("create face detector: %w", err)
	}

	emotionProvider, err := face.NewEmotionProvider(ctx, cfg)
	if err != nil {
		detector.Close()
		return nil, fmt.Errorf("create emotion provider: %w", err)
	}

	svc := service.NewAnalysisService(
		frames,
		vision.NewLocalizer(detector),
		emotion.NewClassifier(emotionProvider, logger, m),
		logger,
		m,
	).WithStrictVideoPath(cfg.StrictVideoPath)

	return &Pipeline{
		Service:  svc,
		cfg:      cfg,
		detector: detector,
		provider: emotionProvider,
	}, nil
}

// NewFrameSource returns the decoder selected by FRAME_SOURCE.
func NewFrameSource(cfg *config.Config, logger *slog.Logger) (video.FrameSource, error) {
	switch cfg.FrameSource {
	case FrameSourceFFmpeg, "":
		return video.NewExtractor(cfg.FFmpegPath, logger), nil
	case FrameSourceOpenCV:
		return opencv.NewCapture(logger), nil
	default:
		return nil, fmt.Errorf("unknown frame source: %s (supported: %s, %s)",
			cfg.FrameSource, FrameSourceFFmpeg, FrameSourceOpenCV)
	}
}

// ReadyChecks reports the external tools the pipeline depends on.
func (p *Pipeline) ReadyChecks() map[string]handler.ReadyCheck {
	checks := map[string]handler.ReadyCheck{
		"face_detector": p.detector.Check,
	}
	if pp, ok := p.provider.(pinger); ok {
		checks["emotion_provider"] = pp.Ping
	}
	if p.cfg.FrameSource == FrameSourceFFmpeg || p.cfg.FrameSource == "" {
		checks["ffmpeg"] = func(ctx context.Context) error {
			_, err := exec.LookPath(p.cfg.FFmpegPath)
			return err
		}
	}
	return checks
}

// Close releases the face detector.
func (p *Pipeline) Close() error {
	return p.detector.Close()
}
