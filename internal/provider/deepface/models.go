package deepface

import (
	"bytes"
	"encoding/json"
)

// AnalyzeRequest for POST /analyze
type AnalyzeRequest struct {
	Img              string   `json:"img"`              // data URI with base64 encoded image
	Actions          []string `json:"actions"`          // ["age", "gender", "emotion", "race"]
	DetectorBackend  string   `json:"detector_backend"` // "opencv", "retinaface", "skip", etc
	EnforceDetection bool     `json:"enforce_detection"`
}

// AnalyzeResponse from POST /analyze
type AnalyzeResponse struct {
	Results AnalyzeResults `json:"results"`
}

// AnalyzeResults accepts both a single result object and a list of them;
// DeepFace servers answer with either shape depending on version.
type AnalyzeResults []AnalyzeResult

func (r *AnalyzeResults) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*r = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single AnalyzeResult
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*r = AnalyzeResults{single}
		return nil
	}

	var many []AnalyzeResult
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*r = many
	return nil
}

type AnalyzeResult struct {
	Region          FacialArea         `json:"region"`
	FaceConfidence  float64            `json:"face_confidence"`
	DominantEmotion string             `json:"dominant_emotion"`
	Emotion         map[string]float64 `json:"emotion"`
}

type FacialArea struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}
