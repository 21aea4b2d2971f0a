package deepface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds the configuration for the DeepFace client
type Config struct {
	BaseURL          string
	Timeout          time.Duration
	Detector         string
	EnforceDetection bool
	RetryCount       int
}

// DefaultConfig returns a Config with sensible defaults. Requests are not
// retried unless RetryCount is raised.
func DefaultConfig() Config {
	return Config{
		BaseURL:          "http://localhost:5005",
		Timeout:          30 * time.Second,
		Detector:         "opencv",
		EnforceDetection: true,
		RetryCount:       0,
	}
}

// Client talks to a DeepFace REST server
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new DeepFace client
func NewClient(config Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// AnalyzeEmotion calls POST /analyze requesting only the emotion action
func (c *Client) AnalyzeEmotion(ctx context.Context, imageDataURI string) (*AnalyzeResponse, error) {
	payload, err := json.Marshal(AnalyzeRequest{
		Img:              imageDataURI,
		Actions:          []string{"emotion"},
		DetectorBackend:  c.config.Detector,
		EnforceDetection: c.config.EnforceDetection,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	body, err := c.postWithRetry(ctx, "/analyze", payload)
	if err != nil {
		return nil, err
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &resp, nil
}

// Ping checks that the server answers at all. Any status below 500 counts
// as reachable since DeepFace serves no dedicated health route.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/"), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeepFaceUnavailable, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrDeepFaceUnavailable, resp.StatusCode)
	}
	return nil
}

// maxBackoff caps the wait between retries
const maxBackoff = 30 * time.Second

// backoff returns 1s, 2s, 4s, ... for attempts 1, 2, 3, ... capped at maxBackoff
func backoff(attempt int) time.Duration {
	if attempt <= 1 {
		return time.Second
	}
	if attempt > 6 {
		return maxBackoff
	}
	return min(time.Second<<(attempt-1), maxBackoff)
}

// postWithRetry retries transport failures and 5xx answers up to RetryCount
// extra times. A 4xx means DeepFace rejected the image and is returned as is.
func (c *Client) postWithRetry(ctx context.Context, path string, payload []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.RetryCount; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		body, err := c.post(ctx, path, payload)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var se *statusError
		if errors.As(err, &se) && se.clientError() {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", ErrDeepFaceUnavailable, lastErr)
}

// statusError carries a non-2xx answer from DeepFace
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("deepface returned status %d: %s", e.status, e.body)
}

func (e *statusError) clientError() bool {
	return e.status >= 400 && e.status < 500
}

func (c *Client) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}
