package video

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
)

const (
	megabyte = 1024 * 1024

	// waitDelay bounds how long Wait blocks on pipes after the process is killed
	waitDelay = 2 * time.Second
)

// Extractor decodes videos by piping them through ffmpeg as MJPEG.
type Extractor struct {
	binary string
	logger *slog.Logger
}

var _ FrameSource = (*Extractor)(nil)

// NewExtractor returns an Extractor that runs the given ffmpeg binary.
func NewExtractor(binary string, logger *slog.Logger) *Extractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{binary: binary, logger: logger}
}

// args builds the decoder command line. Frames leave on stdout as JPEGs.
// jpegQuality is the mjpeg quantizer passed as -q:v (2 is near lossless).
// Without it ffmpeg rate-limits the stream and frames come out blocky.
const jpegQuality = "2"

func (e *Extractor) args(path string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "image2pipe", "-vcodec", "mjpeg", "-q:v", jpegQuality,
		"-",
	}
}

// Frames implements FrameSource. If ffmpeg exits with an error before the
// first frame the video is treated as unreadable and the sequence is empty.
func (e *Extractor) Frames(ctx context.Context, path string) iter.Seq2[domain.Frame, error] {
	return func(yield func(domain.Frame, error) bool) {
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		cmd := exec.CommandContext(runCtx, e.binary, e.args(path)...)
		cmd.WaitDelay = waitDelay
		stderr := &bytes.Buffer{}
		cmd.Stderr = stderr

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			yield(domain.Frame{}, fmt.Errorf("ffmpeg stdout pipe: %w", err))
			return
		}
		if err := cmd.Start(); err != nil {
			yield(domain.Frame{}, fmt.Errorf("start %s: %w", e.binary, err))
			return
		}

		waited := false
		defer func() {
			if !waited {
				cancel()
				_ = cmd.Wait()
			}
		}()

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, megabyte), 64*megabyte)
		scanner.Split(SplitJPEG)

		index := 0
		for scanner.Scan() {
			img, err := imaging.Decode(bytes.NewReader(scanner.Bytes()))
			if err != nil {
				yield(domain.Frame{}, fmt.Errorf("decode frame %d: %w", index, err))
				return
			}
			if !yield(domain.Frame{Index: index, Image: img}, nil) {
				return
			}
			index++
		}

		scanErr := scanner.Err()
		waited = true
		waitErr := cmd.Wait()

		if err := ctx.Err(); err != nil {
			yield(domain.Frame{}, err)
			return
		}
		if scanErr != nil {
			yield(domain.Frame{}, fmt.Errorf("read frames: %w", scanErr))
			return
		}
		if waitErr != nil {
			msg := strings.TrimSpace(stderr.String())
			if index == 0 {
				e.logger.Warn("could not open video",
					"path", path,
					"error", waitErr,
					"stderr", msg,
				)
				return
			}
			e.logger.Warn("ffmpeg exited early",
				"path", path,
				"frames", index,
				"error", waitErr,
				"stderr", msg,
			)
		}
	}
}
