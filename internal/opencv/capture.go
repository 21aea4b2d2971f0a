package opencv

import (
	"context"
	"iter"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
)

// videoCapture is the part of gocv.VideoCapture the frame loop uses.
type videoCapture interface {
	IsOpened() bool
	Read(m *gocv.Mat) bool
	Close() error
}

// openVideoFile wraps gocv.VideoCaptureFile. gocv allocates the native
// capture before opening the file, so a handle can come back with an error.
func openVideoFile(path string) (videoCapture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if vc == nil {
		return nil, err
	}
	return vc, err
}

// Capture decodes videos with OpenCV's VideoCapture.
type Capture struct {
	logger *slog.Logger
	open   func(path string) (videoCapture, error)
}

// NewCapture returns a Capture frame source.
func NewCapture(logger *slog.Logger) *Capture {
	if logger == nil {
		logger = slog.Default()
	}
	return &Capture{logger: logger, open: openVideoFile}
}

// Frames yields decoded frames until the capture runs dry. A file that
// cannot be opened yields nothing.
func (c *Capture) Frames(ctx context.Context, path string) iter.Seq2[domain.Frame, error] {
	return func(yield func(domain.Frame, error) bool) {
		vc, err := c.open(path)
		if vc != nil {
			defer vc.Close()
		}
		if err != nil {
			c.logger.Warn("could not open video", "path", path, "error", err)
			return
		}

		if !vc.IsOpened() {
			c.logger.Warn("could not open video", "path", path)
			return
		}

		mat := gocv.NewMat()
		defer mat.Close()

		for index := 0; ; index++ {
			if err := ctx.Err(); err != nil {
				yield(domain.Frame{}, err)
				return
			}
			if ok := vc.Read(&mat); !ok || mat.Empty() {
				return
			}
			img, err := mat.ToImage()
			if err != nil {
				yield(domain.Frame{}, err)
				return
			}
			if !yield(domain.Frame{Index: index, Image: img}, nil) {
				return
			}
		}
	}
}
