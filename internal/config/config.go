package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"8001"`
	OpsPort     int    `envconfig:"OPS_PORT" default:"9091"`
	Environment string `envconfig:"ENV" default:"development"`

	// Emotion provider
	EmotionProvider          string        `envconfig:"EMOTION_PROVIDER" default:"deepface"`
	DeepFaceURL              string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceTimeout          time.Duration `envconfig:"DEEPFACE_TIMEOUT" default:"30s"`
	DeepFaceDetector         string        `envconfig:"DEEPFACE_DETECTOR" default:"opencv"`
	DeepFaceEnforceDetection bool          `envconfig:"DEEPFACE_ENFORCE_DETECTION" default:"true"`
	DeepFaceRetryCount       int           `envconfig:"DEEPFACE_RETRY_COUNT" default:"0"`
	AWSRegion                string        `envconfig:"AWS_REGION" default:"us-east-1"`
	MockEmotion              string        `envconfig:"MOCK_EMOTION" default:"neutral"`

	// Video decoding and face detection
	FrameSource string `envconfig:"FRAME_SOURCE" default:"ffmpeg"`
	FFmpegPath  string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	// CascadePath is empty by default; the OpenCV install locations are searched.
	CascadePath string `envconfig:"CASCADE_PATH"`

	// StrictVideoPath turns a missing video file into a 404 instead of a score of 0.
	StrictVideoPath bool `envconfig:"STRICT_VIDEO_PATH" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DeepFaceRetryCount < 0 {
		return nil, fmt.Errorf("load config: DEEPFACE_RETRY_COUNT must not be negative, got %d", cfg.DeepFaceRetryCount)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
