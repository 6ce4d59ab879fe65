// Package media converts uploaded recordings into the mono 16 kHz PCM WAV
// format the diarization and transcription backends require.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

const killGracePeriod = 5 * time.Second

// Converter shells out to ffmpeg for audio conversion.
type Converter struct {
	// Binary is the ffmpeg executable (default "ffmpeg").
	Binary string
}

// NewConverter creates a Converter using the ffmpeg on PATH.
func NewConverter() *Converter {
	return &Converter{Binary: "ffmpeg"}
}

// ToWAV converts the audio file at inputPath into a mono 16 kHz PCM WAV
// next to it and returns the WAV path. A WAV input is converted anyway:
// sample rate and channel layout still need normalizing.
func (c *Converter) ToWAV(ctx context.Context, inputPath string) (string, error) {
	ext := filepath.Ext(inputPath)
	wavPath := strings.TrimSuffix(inputPath, ext) + ".wav"
	if wavPath == inputPath {
		wavPath = strings.TrimSuffix(inputPath, ext) + ".16k.wav"
	}

	cmd := exec.CommandContext(ctx, c.Binary,
		"-y",
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-acodec", "pcm_s16le",
		wavPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Own process group so the whole ffmpeg tree dies on cancellation.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = killGracePeriod

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("ffmpeg: killed by context: %w", ctx.Err())
		}
		return "", fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return wavPath, nil
}
