package vision

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
)

// stubDetector returns fixed rectangles
type stubDetector struct {
	rects []image.Rectangle
	err   error
	seen  []image.Image
}

func (s *stubDetector) Detect(ctx context.Context, img image.Image) ([]image.Rectangle, error) {
	s.seen = append(s.seen, img)
	return s.rects, s.err
}

func colorFrame() domain.Frame {
	img := imaging.New(100, 80, color.NRGBA{R: 200, G: 10, B: 30, A: 255})
	return domain.Frame{Index: 4, Image: img}
}

func TestLocalizer_Locate(t *testing.T) {
	tests := []struct {
		name       string
		rects      []image.Rectangle
		wantBounds []image.Rectangle
	}{
		{
			name:       "no detections",
			rects:      nil,
			wantBounds: []image.Rectangle{},
		},
		{
			name:       "single face",
			rects:      []image.Rectangle{image.Rect(10, 10, 40, 50)},
			wantBounds: []image.Rectangle{image.Rect(10, 10, 40, 50)},
		},
		{
			name: "overlapping faces are kept",
			rects: []image.Rectangle{
				image.Rect(0, 0, 30, 30),
				image.Rect(10, 10, 40, 40),
			},
			wantBounds: []image.Rectangle{
				image.Rect(0, 0, 30, 30),
				image.Rect(10, 10, 40, 40),
			},
		},
		{
			name:       "rectangle clipped to frame",
			rects:      []image.Rectangle{image.Rect(80, 60, 130, 110)},
			wantBounds: []image.Rectangle{image.Rect(80, 60, 100, 80)},
		},
		{
			name:       "rectangle outside frame dropped",
			rects:      []image.Rectangle{image.Rect(200, 200, 240, 240)},
			wantBounds: []image.Rectangle{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLocalizer(&stubDetector{rects: tt.rects})

			crops, err := l.Locate(context.Background(), colorFrame())

			require.NoError(t, err)
			require.Len(t, crops, len(tt.wantBounds))
			for i, c := range crops {
				assert.Equal(t, tt.wantBounds[i], c.Bounds)
				assert.Equal(t, tt.wantBounds[i].Dx(), c.Image.Bounds().Dx())
				assert.Equal(t, tt.wantBounds[i].Dy(), c.Image.Bounds().Dy())
			}
		})
	}
}

// TestLocalizer_CropsOriginalColors verifies crops come from the color frame
func TestLocalizer_CropsOriginalColors(t *testing.T) {
	detector := &stubDetector{rects: []image.Rectangle{image.Rect(5, 5, 35, 35)}}
	frame := colorFrame()

	crops, err := NewLocalizer(detector).Locate(context.Background(), frame)

	require.NoError(t, err)
	require.Len(t, crops, 1)
	r, g, b, _ := crops[0].Image.At(0, 0).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(10), g>>8)
	assert.Equal(t, uint32(30), b>>8)
	require.Len(t, detector.seen, 1)
	assert.Same(t, frame.Image, detector.seen[0])
}

func TestLocalizer_DetectorError(t *testing.T) {
	boom := errors.New("detector exploded")
	l := NewLocalizer(&stubDetector{err: boom})

	_, err := l.Locate(context.Background(), colorFrame())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "frame 4")
}

func TestLocalizer_NilImage(t *testing.T) {
	detector := &stubDetector{}

	crops, err := NewLocalizer(detector).Locate(context.Background(), domain.Frame{})

	require.NoError(t, err)
	assert.Empty(t, crops)
	assert.Empty(t, detector.seen)
}
