package domain

import "math"

// ConfidenceScore reduces emotion labels to a value in [0, 100], rounded
// to two decimals: 100 times the mean label weight. An empty list scores 0.
func ConfidenceScore(labels []EmotionLabel) float64 {
	if len(labels) == 0 {
		return 0
	}

	sum := 0
	for _, label := range labels {
		sum += weightTenths[label]
	}

	// sum/10 is the weight total; *100 for percent, *100 again for two decimals.
	return math.Round(float64(sum)*1000/float64(len(labels))) / 100
}

// EmotionTally counts occurrences of each label within one analysis.
type EmotionTally map[EmotionLabel]int

// NewTally counts the given labels.
func NewTally(labels []EmotionLabel) EmotionTally {
	tally := make(EmotionTally, len(labels))
	for _, label := range labels {
		tally[label]++
	}
	return tally
}

// Total returns the number of labels counted.
func (t EmotionTally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}
