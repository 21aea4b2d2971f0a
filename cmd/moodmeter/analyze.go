package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/moodmeter/internal/bootstrap"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/config"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/domain"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/video"
)

// analyzeOptions override the environment configuration for one run
type analyzeOptions struct {
	InputPath   string
	Provider    string
	FrameSource string
	CascadePath string
	FFprobePath string
	Strict      bool
	Details     bool
	NoProgress  bool
}

var analyzeOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a video file and print its confidence level",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg, analyzeOpts)
		return runAnalyze(cmd, cfg, analyzeOpts)
	},
}

// analysisOutput is printed on stdout
type analysisOutput struct {
	ConfidenceLevel float64             `json:"confidence_level"`
	AnalysisID      string              `json:"analysis_id,omitempty"`
	Frames          *int                `json:"frames,omitempty"`
	Faces           *int                `json:"faces,omitempty"`
	Tally           domain.EmotionTally `json:"tally,omitempty"`
	Duration        string              `json:"duration,omitempty"`
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, opts analyzeOptions) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.EmotionProvider = opts.Provider
	}
	if flags.Changed("frame-source") {
		cfg.FrameSource = opts.FrameSource
	}
	if flags.Changed("cascade") {
		cfg.CascadePath = opts.CascadePath
	}
	if flags.Changed("strict") {
		cfg.StrictVideoPath = opts.Strict
	}
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, opts analyzeOptions) error {
	ctx := cmd.Context()

	// Logs go to stderr so stdout stays machine readable
	logger := config.NewLogger(cfg, cmd.ErrOrStderr())

	pipeline, err := bootstrap.NewPipeline(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	if !opts.NoProgress {
		bar := newProgressBar(cmd, cfg, opts)
		defer bar.Finish()
		pipeline.Service.WithFrameObserver(func(frame domain.Frame, faces int) {
			_ = bar.Add(1)
		})
	}

	analysis, err := pipeline.Service.Analyze(ctx, opts.InputPath)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", opts.InputPath, err)
	}

	out := analysisOutput{ConfidenceLevel: analysis.Score}
	if opts.Details {
		out.AnalysisID = analysis.ID.String()
		out.Frames = &analysis.Frames
		out.Faces = &analysis.Faces
		out.Tally = analysis.Tally
		out.Duration = analysis.Duration.String()
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

// newProgressBar shows a counted bar when ffprobe knows the frame total and a
// spinner otherwise.
func newProgressBar(cmd *cobra.Command, cfg *config.Config, opts analyzeOptions) *progressbar.ProgressBar {
	total := -1
	if cfg.FrameSource == bootstrap.FrameSourceFFmpeg || cfg.FrameSource == "" {
		if n, err := video.CountFrames(cmd.Context(), opts.FFprobePath, opts.InputPath); err == nil {
			total = n
		}
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("analyzing frames"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	flags := analyzeCmd.Flags()
	flags.StringVarP(&analyzeOpts.InputPath, "input", "i", "", "Path to the video file")
	flags.StringVar(&analyzeOpts.Provider, "provider", "", "Emotion provider: deepface, rekognition or mock (default: $EMOTION_PROVIDER)")
	flags.StringVar(&analyzeOpts.FrameSource, "frame-source", "", "Frame decoder: ffmpeg or opencv (default: $FRAME_SOURCE)")
	flags.StringVar(&analyzeOpts.CascadePath, "cascade", "", "Haar cascade XML (default: $CASCADE_PATH)")
	flags.StringVar(&analyzeOpts.FFprobePath, "ffprobe", "ffprobe", "ffprobe binary used to size the progress bar")
	flags.BoolVar(&analyzeOpts.Strict, "strict", false, "Fail when the video file does not exist")
	flags.BoolVar(&analyzeOpts.Details, "details", false, "Include frame, face and emotion counts in the output")
	flags.BoolVar(&analyzeOpts.NoProgress, "no-progress", false, "Disable the progress bar")
	_ = analyzeCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(analyzeCmd)
}

