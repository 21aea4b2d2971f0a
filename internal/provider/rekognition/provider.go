package rekognition

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
)

// emotionNames maps Rekognition emotion types onto the DeepFace vocabulary.
// CONFUSED has no counterpart and is reported as unknown.
var emotionNames = map[types.EmotionName]string{
	types.EmotionNameHappy:     "happy",
	types.EmotionNameCalm:      "neutral",
	types.EmotionNameSurprised: "surprise",
	types.EmotionNameSad:       "sad",
	types.EmotionNameFear:      "fear",
	types.EmotionNameAngry:     "angry",
	types.EmotionNameDisgusted: "disgust",
}

// Provider implements provider.EmotionProvider using AWS Rekognition DetectFaces
type Provider struct {
	client *Client
}

// Ensure Provider implements provider.EmotionProvider interface at compile time
var _ provider.EmotionProvider = (*Provider)(nil)

// NewProvider creates a Rekognition provider using the default AWS credential chain
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create rekognition client: %w", err)
	}
	return NewProviderWithClient(client), nil
}

// NewProviderWithClient creates a provider around an existing client
func NewProviderWithClient(client *Client) *Provider {
	return &Provider{client: client}
}

// validateImage checks if image data is valid for Rekognition processing
func validateImage(image []byte) error {
	if len(image) == 0 {
		return fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	if len(image) > maxImageSize {
		return fmt.Errorf("%w: image too large (%d bytes, maximum %d)", ErrInvalidImage, len(image), maxImageSize)
	}
	return nil
}

// AnalyzeEmotion detects faces with all attributes and reports, per face,
// the emotion Rekognition is most confident about.
func (p *Provider) AnalyzeEmotion(ctx context.Context, image []byte) ([]provider.EmotionResult, error) {
	if err := validateImage(image); err != nil {
		return nil, err
	}

	input := &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: image,
		},
		Attributes: []types.Attribute{types.AttributeAll},
	}

	output, err := p.client.rekognition.DetectFaces(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", parseAPIError(err))
	}

	if len(output.FaceDetails) == 0 {
		return nil, ErrNoFaceDetected
	}

	results := make([]provider.EmotionResult, 0, len(output.FaceDetails))
	for _, detail := range output.FaceDetails {
		results = append(results, toEmotionResult(detail))
	}

	return results, nil
}

func toEmotionResult(detail types.FaceDetail) provider.EmotionResult {
	result := provider.EmotionResult{
		DominantEmotion: "unknown",
		Scores:          make(map[string]float64, len(detail.Emotions)),
	}

	var best float32 = -1
	for _, e := range detail.Emotions {
		if e.Confidence == nil {
			continue
		}
		name, ok := emotionNames[e.Type]
		if !ok {
			name = "unknown"
		}
		result.Scores[name] += float64(*e.Confidence)
		if *e.Confidence > best {
			best = *e.Confidence
			result.DominantEmotion = name
		}
	}

	if box := detail.BoundingBox; box != nil {
		result.Region = provider.BoundingBox{
			X:      float64(deref(box.Left)),
			Y:      float64(deref(box.Top)),
			Width:  float64(deref(box.Width)),
			Height: float64(deref(box.Height)),
		}
	}

	return result
}

func deref(v *float32) float32 {
	if v == nil {
		return 0
	}
	return *v
}
