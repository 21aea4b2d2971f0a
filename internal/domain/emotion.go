package domain

import "strings"

// EmotionLabel is the dominant emotion assigned to one face crop.
// Values outside the fixed vocabulary are kept as-is and weigh 0.
type EmotionLabel string

const (
	EmotionHappy    EmotionLabel = "happy"
	EmotionNeutral  EmotionLabel = "neutral"
	EmotionSurprise EmotionLabel = "surprise"
	EmotionSad      EmotionLabel = "sad"
	EmotionFear     EmotionLabel = "fear"
	EmotionAngry    EmotionLabel = "angry"
	EmotionDisgust  EmotionLabel = "disgust"
	EmotionUnknown  EmotionLabel = "unknown"
)

// Emotions lists the vocabulary in descending weight order.
var Emotions = []EmotionLabel{
	EmotionHappy,
	EmotionNeutral,
	EmotionSurprise,
	EmotionSad,
	EmotionFear,
	EmotionAngry,
	EmotionDisgust,
	EmotionUnknown,
}

// weightTenths holds each label's weight multiplied by ten so sums stay exact.
var weightTenths = map[EmotionLabel]int{
	EmotionHappy:    10,
	EmotionNeutral:  8,
	EmotionSurprise: 6,
	EmotionSad:      4,
	EmotionFear:     4,
	EmotionAngry:    1,
	EmotionDisgust:  1,
}

// Weight returns the confidence weight of a label. Unknown and
// unrecognized labels weigh 0.
func Weight(label EmotionLabel) float64 {
	return float64(weightTenths[label]) / 10
}

// IsKnown reports whether the label belongs to the emotion vocabulary.
func (l EmotionLabel) IsKnown() bool {
	for _, e := range Emotions {
		if e == l {
			return true
		}
	}
	return false
}

// ParseEmotion normalizes a backend label (case, surrounding spaces).
// An empty value maps to EmotionUnknown; anything else is preserved.
func ParseEmotion(s string) EmotionLabel {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return EmotionUnknown
	}
	return EmotionLabel(s)
}
