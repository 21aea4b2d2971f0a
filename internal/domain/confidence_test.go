package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(names ...string) []EmotionLabel {
	out := make([]EmotionLabel, len(names))
	for i, n := range names {
		out[i] = EmotionLabel(n)
	}
	return out
}

func TestConfidenceScore(t *testing.T) {
	tests := []struct {
		name   string
		labels []EmotionLabel
		want   float64
	}{
		{"all happy", labels("happy", "happy", "happy", "happy"), 100},
		{"angry and disgust", labels("angry", "disgust"), 10},
		{"no faces", nil, 0},
		{"empty slice", []EmotionLabel{}, 0},
		{"happy and unknown", labels("happy", "unknown"), 50},
		{"single neutral", labels("neutral"), 80},
		{"sad fear surprise", labels("sad", "fear", "surprise"), 46.67},
		{"unrecognized label weighs zero", labels("contempt", "happy"), 50},
		{"all unknown", labels("unknown", "unknown"), 0},
		{"thirds", labels("happy", "angry", "unknown"), 36.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfidenceScore(tt.labels))
		})
	}
}

func randomLabels(r *rand.Rand, n int) []EmotionLabel {
	pool := append(append([]EmotionLabel{}, Emotions...), EmotionLabel("contempt"))
	out := make([]EmotionLabel, n)
	for i := range out {
		out[i] = pool[r.Intn(len(pool))]
	}
	return out
}

func TestConfidenceScore_Bounds(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		score := ConfidenceScore(randomLabels(r, 1+r.Intn(64)))
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestConfidenceScore_PermutationInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		in := randomLabels(r, 1+r.Intn(40))
		want := ConfidenceScore(in)

		shuffled := append([]EmotionLabel(nil), in...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		require.Equal(t, want, ConfidenceScore(shuffled))
	}
}

func TestConfidenceScore_TwoDecimals(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for i := 0; i < 200; i++ {
		score := ConfidenceScore(randomLabels(r, 1+r.Intn(30)))
		scaled := score * 100
		assert.InDelta(t, scaled, float64(int64(scaled+0.5)), 1e-6)
	}
}

func TestNewTally(t *testing.T) {
	tally := NewTally(labels("happy", "unknown", "happy", "sad"))

	assert.Equal(t, 2, tally[EmotionHappy])
	assert.Equal(t, 1, tally[EmotionUnknown])
	assert.Equal(t, 1, tally[EmotionSad])
	assert.Equal(t, 0, tally[EmotionAngry])
	assert.Equal(t, 4, tally.Total())
}

func TestNewTally_Empty(t *testing.T) {
	tally := NewTally(nil)
	assert.Empty(t, tally)
	assert.Equal(t, 0, tally.Total())
}
