package mock

import (
	"context"
	"crypto/sha256"
	"errors"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider"
)

// LabelHashed makes the provider derive the label from the image content.
const LabelHashed = "hashed"

// ErrEmptyImage is returned for a zero-length image
var ErrEmptyImage = errors.New("mock: empty image")

// hashedLabels is the vocabulary used by LabelHashed
var hashedLabels = []string{"happy", "surprise", "neutral", "sad", "fear", "angry", "disgust"}

// Provider implementa provider.EmotionProvider para testes e desenvolvimento
type Provider struct {
	label string
}

// New cria um provider que sempre responde com o rótulo informado.
// Com LabelHashed o rótulo é determinístico por imagem.
func New(label string) *Provider {
	if label == "" {
		label = "neutral"
	}
	return &Provider{label: label}
}

// AnalyzeEmotion simula a classificação de uma face
func (p *Provider) AnalyzeEmotion(ctx context.Context, image []byte) ([]provider.EmotionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	label := p.label
	if label == LabelHashed {
		label = labelFor(image)
	}

	return []provider.EmotionResult{
		{
			DominantEmotion: label,
			Scores:          map[string]float64{label: 100},
			Region: provider.BoundingBox{
				X:      0,
				Y:      0,
				Width:  1,
				Height: 1,
			},
		},
	}, nil
}

// labelFor escolhe um rótulo a partir do hash da imagem
func labelFor(image []byte) string {
	sum := sha256.Sum256(image)
	return hashedLabels[int(sum[0])%len(hashedLabels)]
}

var _ provider.EmotionProvider = (*Provider)(nil)
