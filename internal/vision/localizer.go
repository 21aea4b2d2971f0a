// Package vision finds faces in frames and cuts them out.
package vision

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
)

// FaceDetector returns the bounding boxes of faces in an image, zero or more.
type FaceDetector interface {
	Detect(ctx context.Context, img image.Image) ([]image.Rectangle, error)
}

// Localizer turns frames into face crops.
type Localizer struct {
	detector FaceDetector
}

// NewLocalizer returns a Localizer backed by detector.
func NewLocalizer(detector FaceDetector) *Localizer {
	return &Localizer{detector: detector}
}

// Locate crops the original frame once per detected rectangle. Rectangles
// are clipped to the frame; those left empty are dropped.
func (l *Localizer) Locate(ctx context.Context, frame domain.Frame) ([]domain.FaceCrop, error) {
	if frame.Image == nil {
		return nil, nil
	}

	rects, err := l.detector.Detect(ctx, frame.Image)
	if err != nil {
		return nil, fmt.Errorf("detect faces in frame %d: %w", frame.Index, err)
	}

	bounds := frame.Image.Bounds()
	crops := make([]domain.FaceCrop, 0, len(rects))
	for _, r := range rects {
		r = r.Canon().Intersect(bounds)
		if r.Empty() {
			continue
		}
		crops = append(crops, domain.FaceCrop{
			Image:  imaging.Crop(frame.Image, r),
			Bounds: r,
		})
	}
	return crops, nil
}
