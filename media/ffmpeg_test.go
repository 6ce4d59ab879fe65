package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestToWAVOutputPath(t *testing.T) {
	// A fake "ffmpeg" that copies its input to its output, so the path
	// logic can be checked without a real ffmpeg on PATH.
	dir := t.TempDir()
	script := filepath.Join(dir, "ffmpeg")
	body := "#!/bin/sh\nin=\"$3\"\nfor out; do :; done\ncp \"$in\" \"$out\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mp3 input", "reunion.mp3", "reunion.wav"},
		{"m4a input", "reunion.m4a", "reunion.wav"},
		{"wav input keeps a distinct output", "reunion.wav", "reunion.16k.wav"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputDir := t.TempDir()
			input := filepath.Join(inputDir, tt.input)
			if err := os.WriteFile(input, []byte("audio"), 0o644); err != nil {
				t.Fatalf("write input: %v", err)
			}

			c := &Converter{Binary: script}
			out, err := c.ToWAV(context.Background(), input)
			if err != nil {
				t.Fatalf("ToWAV() error: %v", err)
			}
			if filepath.Base(out) != tt.want {
				t.Errorf("output = %s, want %s", filepath.Base(out), tt.want)
			}
			if _, err := os.Stat(out); err != nil {
				t.Errorf("output file missing: %v", err)
			}
		})
	}
}

func TestToWAVReportsStderr(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ffmpeg")
	body := "#!/bin/sh\necho 'invalid data found' >&2\nexit 1\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	c := &Converter{Binary: script}
	_, err := c.ToWAV(context.Background(), filepath.Join(dir, "broken.mp3"))
	if err == nil || !strings.Contains(err.Error(), "invalid data found") {
		t.Errorf("error = %v", err)
	}
}

func TestToWAVHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewConverter()
	if _, err := c.ToWAV(ctx, "input.mp3"); err == nil {
		t.Error("ToWAV() succeeded with a canceled context")
	}
}
