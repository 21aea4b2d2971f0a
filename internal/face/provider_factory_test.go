package face

import (
	"context"
	"strings"
	"testing"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/config"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider/rekognition"
)

func TestNewEmotionProvider_DeepFace(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name            string
		emotionProvider string
		deepFaceURL     string
	}{
		{
			name:            "explicit deepface provider",
			emotionProvider: "deepface",
			deepFaceURL:     "http://localhost:5005",
		},
		{
			name:            "empty provider defaults to deepface",
			emotionProvider: "",
			deepFaceURL:     "http://localhost:5005",
		},
		{
			name:            "empty deepface URL uses default",
			emotionProvider: "deepface",
			deepFaceURL:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				EmotionProvider: tt.emotionProvider,
				DeepFaceURL:     tt.deepFaceURL,
			}

			provider, err := NewEmotionProvider(ctx, cfg)
			if err != nil {
				t.Fatalf("NewEmotionProvider() error = %v", err)
			}

			if _, ok := provider.(*deepface.Provider); !ok {
				t.Errorf("NewEmotionProvider() returned type %T, want *deepface.Provider", provider)
			}
		})
	}
}

func TestNewEmotionProvider_Mock(t *testing.T) {
	cfg := &config.Config{
		EmotionProvider: "mock",
		MockEmotion:     "happy",
	}

	p, err := NewEmotionProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewEmotionProvider() error = %v", err)
	}

	if _, ok := p.(*mock.Provider); !ok {
		t.Fatalf("NewEmotionProvider() returned type %T, want *mock.Provider", p)
	}

	results, err := p.AnalyzeEmotion(context.Background(), []byte{0xFF})
	if err != nil {
		t.Fatalf("AnalyzeEmotion() error = %v", err)
	}
	if results[0].DominantEmotion != "happy" {
		t.Errorf("AnalyzeEmotion() label = %q, want %q", results[0].DominantEmotion, "happy")
	}
}

func TestNewEmotionProvider_Rekognition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Rekognition test in short mode (requires AWS credentials)")
	}

	cfg := &config.Config{
		EmotionProvider: "rekognition",
		AWSRegion:       "us-east-1",
	}

	provider, err := NewEmotionProvider(context.Background(), cfg)
	if err != nil {
		t.Skipf("Skipping Rekognition test (likely missing AWS credentials): %v", err)
	}

	if _, ok := provider.(*rekognition.Provider); !ok {
		t.Errorf("NewEmotionProvider() returned type %T, want *rekognition.Provider", provider)
	}
}

func TestNewEmotionProvider_UnknownProvider(t *testing.T) {
	cfg := &config.Config{
		EmotionProvider: "unknown-provider",
	}

	_, err := NewEmotionProvider(context.Background(), cfg)
	if err == nil {
		t.Fatal("NewEmotionProvider() expected error for unknown provider, got nil")
	}

	expectedErrMsg := "unknown provider type: unknown-provider"
	if !strings.HasPrefix(err.Error(), expectedErrMsg) {
		t.Errorf("NewEmotionProvider() error = %v, want error starting with %q", err, expectedErrMsg)
	}
}

func TestProviderType_Constants(t *testing.T) {
	if ProviderTypeDeepFace != "deepface" {
		t.Errorf("ProviderTypeDeepFace = %q, want %q", ProviderTypeDeepFace, "deepface")
	}

	if ProviderTypeRekognition != "rekognition" {
		t.Errorf("ProviderTypeRekognition = %q, want %q", ProviderTypeRekognition, "rekognition")
	}

	if ProviderTypeMock != "mock" {
		t.Errorf("ProviderTypeMock = %q, want %q", ProviderTypeMock, "mock")
	}
}
