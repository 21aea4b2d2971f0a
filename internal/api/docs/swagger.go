package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
)

// AnalyzeRequest represents the body of an analysis request
type AnalyzeRequest struct {
	VideoPath string `json:"video_path" example:"/data/videos/interview.mp4"`
}

// AnalyzeResponse represents the score of an analyzed video
type AnalyzeResponse struct {
	ConfidenceLevel float64 `json:"confidence_level" example:"73.33"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error" example:"Video path not provided"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "MoodMeter API",
		Version:     "v1.0.0",
		Description: "Scores the apparent emotional confidence of the faces in a video",
		Host:        "localhost:8001",
		Path:        "/",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /analyze - Analyze Video
		endpoint.New(
			endpoint.POST,
			"/analyze",
			endpoint.WithTags("Analysis"),
			endpoint.WithSummary("Score the faces in a video"),
			endpoint.WithDescription("Extracts every frame of the video at video_path, detects faces, classifies each face's dominant emotion and returns the weighted confidence level (0-100, two decimals). A video with no faces, or one that cannot be opened, scores 0."),
			endpoint.WithBody(AnalyzeRequest{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalyzeResponse{}, "200", "Video analyzed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Error: "Video path not provided"}, "400", "Bad Request"),
				response.New(ErrorResponse{Error: "Video not found"}, "404", "Not Found (only with STRICT_VIDEO_PATH=true)"),
				response.New(ErrorResponse{Error: "extract frames: decode frame 12: invalid JPEG format"}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
