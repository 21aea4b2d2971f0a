package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name: "loads explicit values",
			envVars: map[string]string{
				"PORT":              "8080",
				"OPS_PORT":          "9100",
				"ENV":               "production",
				"EMOTION_PROVIDER":  "rekognition",
				"AWS_REGION":        "eu-west-1",
				"DEEPFACE_TIMEOUT":  "5s",
				"FRAME_SOURCE":      "opencv",
				"STRICT_VIDEO_PATH": "true",
			},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 8080 &&
					c.OpsPort == 9100 &&
					c.Environment == "production" &&
					c.EmotionProvider == "rekognition" &&
					c.AWSRegion == "eu-west-1" &&
					c.DeepFaceTimeout == 5*time.Second &&
					c.FrameSource == "opencv" &&
					c.StrictVideoPath
			},
		},
		{
			name:    "uses defaults when optional vars missing",
			envVars: map[string]string{},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 8001 &&
					c.OpsPort == 9091 &&
					c.Environment == "development" &&
					c.EmotionProvider == "deepface" &&
					c.DeepFaceURL == "http://localhost:5005" &&
					c.DeepFaceDetector == "opencv" &&
					c.DeepFaceEnforceDetection &&
					c.DeepFaceRetryCount == 0 &&
					c.FrameSource == "ffmpeg" &&
					c.FFmpegPath == "ffmpeg" &&
					c.CascadePath == "" &&
					!c.StrictVideoPath
			},
		},
		{
			name: "fails on malformed port",
			envVars: map[string]string{
				"PORT": "not-a-number",
			},
			wantErr: true,
		},
		{
			name: "fails on malformed duration",
			envVars: map[string]string{
				"DEEPFACE_TIMEOUT": "forever",
			},
			wantErr: true,
		},
		{
			name: "fails on negative retry count",
			envVars: map[string]string{
				"DEEPFACE_RETRY_COUNT": "-1",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				"PORT", "OPS_PORT", "ENV", "EMOTION_PROVIDER", "AWS_REGION", "DEEPFACE_URL",
				"DEEPFACE_TIMEOUT", "DEEPFACE_DETECTOR", "DEEPFACE_ENFORCE_DETECTION",
				"DEEPFACE_RETRY_COUNT", "FRAME_SOURCE", "FFMPEG_PATH", "CASCADE_PATH",
				"STRICT_VIDEO_PATH", "MOCK_EMOTION",
			} {
				// t.Setenv restores the original value after the test
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Load() config check failed, got: %+v", cfg)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"development", "development", true},
		{"production", "production", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Environment: tt.env}
			if got := c.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"production", "production", true},
		{"development", "development", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Environment: tt.env}
			if got := c.IsProduction(); got != tt.want {
				t.Errorf("IsProduction() = %v, want %v", got, tt.want)
			}
		})
	}
}
