package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrFrameCountUnavailable is returned when ffprobe cannot report a frame count
var ErrFrameCountUnavailable = errors.New("frame count unavailable")

type ffprobeOutput struct {
	Streams []struct {
		NbFrames      string `json:"nb_frames"`
		NbReadPackets string `json:"nb_read_packets"`
	} `json:"streams"`
}

// CountFrames asks ffprobe for the number of video frames in path. The
// container metadata is tried first, then a packet count over the stream.
func CountFrames(ctx context.Context, ffprobe, path string) (int, error) {
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}

	fast := exec.CommandContext(ctx, ffprobe, "-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=nb_frames", "-of", "json", path)
	if n, err := runProbe(fast, func(res ffprobeOutput) string { return res.Streams[0].NbFrames }); err == nil {
		return n, nil
	}

	slow := exec.CommandContext(ctx, ffprobe, "-v", "error", "-select_streams", "v:0", "-count_packets",
		"-show_entries", "stream=nb_read_packets", "-of", "json", path)
	return runProbe(slow, func(res ffprobeOutput) string { return res.Streams[0].NbReadPackets })
}

func runProbe(cmd *exec.Cmd, field func(ffprobeOutput) string) (int, error) {
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFrameCountUnavailable, err)
	}

	var res ffprobeOutput
	if err := json.Unmarshal(out, &res); err != nil {
		return 0, fmt.Errorf("%w: parse ffprobe output: %v", ErrFrameCountUnavailable, err)
	}
	if len(res.Streams) == 0 {
		return 0, fmt.Errorf("%w: no video stream", ErrFrameCountUnavailable)
	}

	n, err := strconv.Atoi(field(res))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrFrameCountUnavailable, field(res))
	}
	return n, nil
}
