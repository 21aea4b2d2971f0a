package handler

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/audit"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
)

// AnalysisService scores the faces of a video
type AnalysisService interface {
	Analyze(ctx context.Context, videoPath string) (*domain.Analysis, error)
}

// AnalyzeHandler serves POST /analyze
type AnalyzeHandler struct {
	service  AnalysisService
	audit    audit.Logger
	provider string
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler instance. A nil auditor
// disables the audit trail.
func NewAnalyzeHandler(service AnalysisService, auditor audit.Logger, provider string, logger *slog.Logger) *AnalyzeHandler {
	if auditor == nil {
		auditor = &audit.NoOpLogger{}
	}
	return &AnalyzeHandler{
		service:  service,
		audit:    auditor,
		provider: provider,
		logger:   logger,
	}
}

// AnalyzeRequest request body for analyze endpoint
type AnalyzeRequest struct {
	VideoPath string `json:"video_path"`
}

// AnalyzeResponse response for analyze endpoint
type AnalyzeResponse struct {
	ConfidenceLevel float64 `json:"confidence_level"`
}

// Analyze handles POST /analyze
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.ErrBadRequest.WithError(err)
		}
	}

	if req.VideoPath == "" {
		return domain.ErrVideoPathRequired
	}

	analysis, err := h.service.Analyze(c.UserContext(), req.VideoPath)
	h.record(c, req.VideoPath, analysis, err)
	if err != nil {
		return err
	}

	h.logger.Debug("analysis served",
		"analysis_id", analysis.ID.String(),
		"request_id", c.Locals("requestid"),
		"confidence_level", analysis.Score,
	)

	return c.JSON(AnalyzeResponse{
		ConfidenceLevel: analysis.Score,
	})
}

func (h *AnalyzeHandler) record(c *fiber.Ctx, videoPath string, analysis *domain.Analysis, analyzeErr error) {
	event := audit.Event{
		EventType: audit.EventVideoAnalyzed,
		VideoPath: videoPath,
		Provider:  h.provider,
		Success:   analyzeErr == nil,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
	if id, ok := c.Locals("requestid").(string); ok {
		event.RequestID = id
	}
	if analyzeErr != nil {
		event.EventType = audit.EventVideoAnalysisFailed
		event.Error = analyzeErr.Error()
	}
	if analysis != nil {
		score := analysis.Score
		event.AnalysisID = analysis.ID.String()
		event.ConfidenceLevel = &score
		event.Metadata = map[string]string{
			"frames": strconv.Itoa(analysis.Frames),
			"faces":  strconv.Itoa(analysis.Faces),
		}
	}

	if err := h.audit.Log(c.UserContext(), event); err != nil {
		h.logger.Warn("audit log failed", "error", err)
	}
}
