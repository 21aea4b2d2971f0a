package provider

import "context"

// EmotionProvider classifies the facial expression in an encoded image.
type EmotionProvider interface {
	// AnalyzeEmotion returns one record per face the backend finds in the image.
	// Backends that re-detect faces inside a crop may return more than one record.
	AnalyzeEmotion(ctx context.Context, image []byte) ([]EmotionResult, error)
}

// EmotionResult is one analyzed face
type EmotionResult struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Scores          map[string]float64 `json:"scores,omitempty"`
	Region          BoundingBox        `json:"region"`
}

// BoundingBox represents the face area in the image
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
