package deepface

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider"
)

// Provider implements provider.EmotionProvider using the DeepFace API
type Provider struct {
	client *Client
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// AnalyzeEmotion sends a JPEG face crop to DeepFace and returns every
// analyzed face in the order DeepFace reports them.
func (p *Provider) AnalyzeEmotion(ctx context.Context, image []byte) ([]provider.EmotionResult, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.AnalyzeEmotion(ctx, dataURI)
	if err != nil {
		return nil, fmt.Errorf("analyze emotion: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, ErrNoFaceInResponse
	}

	results := make([]provider.EmotionResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, provider.EmotionResult{
			DominantEmotion: r.DominantEmotion,
			Scores:          r.Emotion,
			Region: provider.BoundingBox{
				X:      float64(r.Region.X),
				Y:      float64(r.Region.Y),
				Width:  float64(r.Region.W),
				Height: float64(r.Region.H),
			},
		})
	}

	return results, nil
}

// Ping reports whether the DeepFace server is reachable
func (p *Provider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Ensure Provider implements provider.EmotionProvider
var _ provider.EmotionProvider = (*Provider)(nil)
