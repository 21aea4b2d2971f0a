// Package emotion assigns an emotion label to each face crop.
package emotion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/metrics"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider"
)

const jpegQuality = 95

// otherMetricsLabel keeps labels outside the vocabulary from growing the metric
const otherMetricsLabel = "other"

var (
	errNoResults     = errors.New("provider returned no results")
	errEmptyDominant = errors.New("provider returned an empty dominant emotion")
	errEmptyCrop     = errors.New("empty face crop")
)

// Classifier wraps an EmotionProvider so that every crop gets a label.
type Classifier struct {
	provider provider.EmotionProvider
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewClassifier returns a Classifier. m may be nil.
func NewClassifier(p provider.EmotionProvider, logger *slog.Logger, m *metrics.Metrics) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{provider: p, logger: logger, metrics: m}
}

// Classify returns the dominant emotion of the crop, or EmotionUnknown if
// anything goes wrong. Failures are logged and counted, never returned.
func (c *Classifier) Classify(ctx context.Context, crop domain.FaceCrop) domain.EmotionLabel {
	label, err := c.classify(ctx, crop)
	if err != nil {
		c.logger.WarnContext(ctx, "emotion classification failed",
			"bounds", crop.Bounds.String(),
			"error", err,
		)
		c.metrics.ClassificationFailed()
		label = domain.EmotionUnknown
	}

	if label.IsKnown() {
		c.metrics.EmotionClassified(string(label))
	} else {
		c.metrics.EmotionClassified(otherMetricsLabel)
	}
	return label
}

func (c *Classifier) classify(ctx context.Context, crop domain.FaceCrop) (domain.EmotionLabel, error) {
	if crop.Image == nil || crop.Image.Bounds().Empty() {
		return "", errEmptyCrop
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, crop.Image, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("encode crop: %w", err)
	}

	results, err := c.provider.AnalyzeEmotion(ctx, buf.Bytes())
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errNoResults
	}

	// Backends may re-detect several faces inside one crop; the first wins.
	dominant := results[0].DominantEmotion
	if strings.TrimSpace(dominant) == "" {
		return "", errEmptyDominant
	}
	return domain.ParseEmotion(dominant), nil
}
