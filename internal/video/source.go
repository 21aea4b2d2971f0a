// Package video turns a video file into an ordered sequence of decoded frames.
package video

import (
	"context"
	"iter"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
)

// FrameSource decodes a video file lazily.
//
// The returned sequence is finite and can be ranged over once. A source
// that cannot be opened yields no frames and no error. Any decoder handle
// is released when the range loop ends, however it ends.
type FrameSource interface {
	Frames(ctx context.Context, path string) iter.Seq2[domain.Frame, error]
}
