package face

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/config"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider/rekognition"
)

// ProviderType defines supported emotion provider types
type ProviderType string

const (
	// ProviderTypeDeepFace is the DeepFace HTTP service (default)
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeRekognition is the AWS Rekognition provider
	ProviderTypeRekognition ProviderType = "rekognition"
	// ProviderTypeMock answers with a configured label, for local runs without a model
	ProviderTypeMock ProviderType = "mock"
)

// NewEmotionProvider creates an EmotionProvider instance based on configuration
//
// Environment variables:
//   - EMOTION_PROVIDER: "deepface", "rekognition" or "mock" (default: "deepface")
//   - DEEPFACE_URL: DeepFace API URL (default: "http://localhost:5005")
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - MOCK_EMOTION: label returned by the mock provider (default: "neutral")
func NewEmotionProvider(ctx context.Context, cfg *config.Config) (provider.EmotionProvider, error) {
	switch ProviderType(cfg.EmotionProvider) {
	case ProviderTypeDeepFace, "":
		return createDeepFaceProvider(cfg), nil

	case ProviderTypeRekognition:
		return createRekognitionProvider(ctx, cfg)

	case ProviderTypeMock:
		return mock.New(cfg.MockEmotion), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.EmotionProvider, ProviderTypeDeepFace, ProviderTypeRekognition, ProviderTypeMock)
	}
}

// createRekognitionProvider creates an AWS Rekognition provider instance
func createRekognitionProvider(ctx context.Context, cfg *config.Config) (provider.EmotionProvider, error) {
	rekogConfig := rekognition.DefaultConfig()
	if cfg.AWSRegion != "" {
		rekogConfig.Region = cfg.AWSRegion
	}

	prov, err := rekognition.NewProvider(ctx, rekogConfig)
	if err != nil {
		return nil, fmt.Errorf("create rekognition provider in %s: %w", rekogConfig.Region, err)
	}

	return prov, nil
}

// createDeepFaceProvider creates a DeepFace provider instance
func createDeepFaceProvider(cfg *config.Config) provider.EmotionProvider {
	deepfaceConfig := deepface.DefaultConfig()

	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceTimeout > 0 {
		deepfaceConfig.Timeout = cfg.DeepFaceTimeout
	}
	if cfg.DeepFaceDetector != "" {
		deepfaceConfig.Detector = cfg.DeepFaceDetector
	}
	deepfaceConfig.EnforceDetection = cfg.DeepFaceEnforceDetection
	deepfaceConfig.RetryCount = cfg.DeepFaceRetryCount

	return deepface.NewProvider(deepfaceConfig)
}
