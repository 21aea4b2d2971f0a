//go:build integration

package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/emotion"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/metrics"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/opencv"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/service"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/video"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/vision"
)

// pipeline wires the real decoder and detector with the mock emotion provider
func pipeline(t *testing.T) (*Router, *metrics.Metrics) {
	t.Helper()

	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not on PATH")
	}
	cascade, err := opencv.LocateCascade(os.Getenv("CASCADE_PATH"))
	if err != nil {
		t.Skip("cascade file not available; set CASCADE_PATH")
	}
	if _, err := os.Stat(cascade); err != nil {
		t.Skip("cascade file not available; set CASCADE_PATH")
	}

	detector, err := opencv.NewCascadeDetector(cascade)
	if err != nil {
		t.Fatalf("load cascade: %v", err)
	}
	t.Cleanup(func() { detector.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewAnalysisService(
		video.NewExtractor(ffmpeg, logger),
		vision.NewLocalizer(detector),
		emotion.NewClassifier(mock.New("happy"), logger, m),
		logger,
		m,
	)

	router := NewRouter(logger, &Dependencies{Analysis: svc})
	router.Setup()
	return router, m
}

// testVideo renders a short synthetic clip with ffmpeg's test source
func testVideo(t *testing.T) string {
	t.Helper()

	out := filepath.Join(t.TempDir(), "testsrc.mp4")
	cmd := exec.CommandContext(context.Background(), "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=160x120:rate=5",
		"-pix_fmt", "yuv420p", out,
	)
	if msg, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("render test video: %v: %s", err, msg)
	}
	return out
}

func analyze(t *testing.T, router *Router, path string) (int, map[string]any) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"video_path": path})
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := router.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	return resp.StatusCode, result
}

func TestIntegration_AnalyzeSyntheticVideo(t *testing.T) {
	router, m := pipeline(t)
	path := testVideo(t)

	status, result := analyze(t, router, path)

	if status != 200 {
		t.Fatalf("Status = %d, want 200 (%v)", status, result)
	}
	if _, ok := result["confidence_level"].(float64); !ok {
		t.Errorf("confidence_level missing: %v", result)
	}
	if got := testutil.ToFloat64(m.FramesExtractedTotal); got != 5 {
		t.Errorf("frames extracted = %v, want 5", got)
	}
}

func TestIntegration_MissingVideoScoresZero(t *testing.T) {
	router, m := pipeline(t)

	status, result := analyze(t, router, filepath.Join(t.TempDir(), "missing.mp4"))

	if status != 200 {
		t.Fatalf("Status = %d, want 200", status)
	}
	if result["confidence_level"] != 0.0 {
		t.Errorf("confidence_level = %v, want 0", result["confidence_level"])
	}
	if got := testutil.ToFloat64(m.FramesExtractedTotal); got != 0 {
		t.Errorf("frames extracted = %v, want 0", got)
	}
}

func TestIntegration_NotFoundReturns404(t *testing.T) {
	router, _ := pipeline(t)

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	resp, err := router.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != 404 {
		t.Errorf("Status = %d, want 404", resp.StatusCode)
	}
}
