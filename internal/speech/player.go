package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// Player plays one audio buffer to the default output device, blocking
// until playback finishes.
type Player interface {
	Play(ctx context.Context, audio []byte) error
}

// CommandPlayer shells out to the platform audio player. The buffer is
// written to a temporary WAV file first since the system players read
// from disk.
type CommandPlayer struct {
	command string
	args    []string
	logger  *zap.Logger
}

// NewCommandPlayer builds a player using the platform default command:
// afplay on macOS, aplay elsewhere. A non-empty command overrides the
// default.
func NewCommandPlayer(command string, logger *zap.Logger) *CommandPlayer {
	p := &CommandPlayer{command: command, logger: logger}
	if p.command == "" {
		if runtime.GOOS == "darwin" {
			p.command = "afplay"
		} else {
			p.command = "aplay"
			p.args = []string{"-q"}
		}
	}
	return p
}

func (p *CommandPlayer) Play(ctx context.Context, audio []byte) error {
	f, err := os.CreateTemp("", "skyebot-audio-*.wav")
	if err != nil {
		return fmt.Errorf("create temp audio file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio file: %w", err)
	}

	args := append(append([]string{}, p.args...), path)
	cmd := exec.CommandContext(ctx, p.command, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", p.command, err)
	}
	p.logger.Debug("played segment", zap.Int("audio_bytes", len(audio)))
	return nil
}
