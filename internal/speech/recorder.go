package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"go.uber.org/zap"
)

// Recorder captures a fixed-duration utterance from the default input
// device and returns it as LINEAR16 WAV bytes.
type Recorder interface {
	Record(ctx context.Context) ([]byte, error)
}

// CommandRecorder shells out to the platform capture tool: sox's rec on
// macOS, arecord elsewhere.
type CommandRecorder struct {
	seconds    int
	sampleRate int
	logger     *zap.Logger
}

// NewCommandRecorder builds a recorder capturing seconds of audio at
// sampleRate Hz.
func NewCommandRecorder(seconds, sampleRate int, logger *zap.Logger) *CommandRecorder {
	if seconds <= 0 {
		seconds = 5
	}
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &CommandRecorder{seconds: seconds, sampleRate: sampleRate, logger: logger}
}

func (r *CommandRecorder) Record(ctx context.Context) ([]byte, error) {
	f, err := os.CreateTemp("", "skyebot-rec-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create temp recording file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.CommandContext(ctx, "rec",
			"-q", "-r", strconv.Itoa(r.sampleRate), "-c", "1", "-b", "16",
			path, "trim", "0", strconv.Itoa(r.seconds))
	} else {
		cmd = exec.CommandContext(ctx, "arecord",
			"-q", "-f", "S16_LE", "-r", strconv.Itoa(r.sampleRate), "-c", "1",
			"-d", strconv.Itoa(r.seconds), path)
	}

	r.logger.Info("recording", zap.Int("seconds", r.seconds))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("recording failed: %w", err)
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return audio, nil
}
