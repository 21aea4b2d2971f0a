package domain

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// Frame is one decoded picture of a video, in source order.
type Frame struct {
	Index int
	Image image.Image
}

// FaceCrop is the part of a frame inside a detected face rectangle.
type FaceCrop struct {
	Image  image.Image
	Bounds image.Rectangle
}

// Analysis is the outcome of scoring one video.
type Analysis struct {
	ID       uuid.UUID
	Frames   int
	Faces    int
	Labels   []EmotionLabel
	Tally    EmotionTally
	Score    float64
	Duration time.Duration
}
