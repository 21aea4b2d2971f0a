// Package opencv adapts gocv to the frame and face detection interfaces.
package opencv

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

// Haar cascade tuning used for every detection.
const (
	ScaleFactor  = 1.1
	MinNeighbors = 5
)

// MinFaceSize is the smallest face the detector reports.
var MinFaceSize = image.Pt(30, 30)

// ErrDetectorClosed is returned by Detect after Close
var ErrDetectorClosed = errors.New("opencv: cascade detector closed")

// ErrCascadeNotFound is returned by LocateCascade when no search path has the file
var ErrCascadeNotFound = errors.New("opencv: haar cascade not found")

// CascadeFile is the frontal face cascade bundled with OpenCV.
const CascadeFile = "haarcascade_frontalface_default.xml"

// CascadeSearchPaths are checked in order when no cascade path is configured.
var CascadeSearchPaths = []string{
	"data",
	"/usr/local/share/opencv4/haarcascades",
	"/usr/share/opencv4/haarcascades",
	"/opt/homebrew/share/opencv4/haarcascades",
	"/usr/share/opencv/haarcascades",
}

// LocateCascade returns path when set. Otherwise it looks for CascadeFile in
// CascadeSearchPaths.
func LocateCascade(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	for _, dir := range CascadeSearchPaths {
		candidate := filepath.Join(dir, CascadeFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: set CASCADE_PATH (searched %s)", ErrCascadeNotFound, strings.Join(CascadeSearchPaths, ", "))
}

// CascadeDetector finds frontal faces with a Haar cascade classifier.
// The classifier is not safe for concurrent use, so calls are serialized.
type CascadeDetector struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
	closed     bool
}

// NewCascadeDetector loads the cascade XML at path.
func NewCascadeDetector(path string) (*CascadeDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("load cascade %s: file missing or invalid", path)
	}
	return &CascadeDetector{classifier: classifier}, nil
}

// Detect returns face rectangles in the coordinate space of img.
func (d *CascadeDetector) Detect(ctx context.Context, img image.Image) ([]image.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDetectorClosed
	}

	rects := d.classifier.DetectMultiScaleWithParams(gray, ScaleFactor, MinNeighbors, 0, MinFaceSize, image.Point{})

	origin := img.Bounds().Min
	if origin != (image.Point{}) {
		for i := range rects {
			rects[i] = rects[i].Add(origin)
		}
	}
	return rects, nil
}

// Check fails once the detector has been closed.
func (d *CascadeDetector) Check(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDetectorClosed
	}
	return nil
}

// Close releases the classifier.
func (d *CascadeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.classifier.Close()
}
