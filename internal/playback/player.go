package playback

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrMissingFile is returned for audio paths that do not exist.
var ErrMissingFile = errors.New("audio file not found")

// Player plays one audio file and blocks until it finishes.
type Player interface {
	Play(ctx context.Context, path string) error
}

// CommandPlayer plays files through a platform audio command.
type CommandPlayer struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(cmd *exec.Cmd) error
}

// NewCommandPlayer returns a player for the current platform.
func NewCommandPlayer() *CommandPlayer {
	return &CommandPlayer{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// Play checks that the file exists and runs the player command until it
// exits or ctx is cancelled.
func (p *CommandPlayer) Play(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("audio file is empty: %s", path)
	}

	name, args, err := p.command(path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if err := p.run(cmd); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// command picks the audio command, in order of preference.
func (p *CommandPlayer) command(path string) (string, []string, error) {
	switch p.goos {
	case "darwin":
		return "afplay", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		candidates := []struct {
			name string
			args []string
		}{
			// mpg123 first since it handles MP3 files best
			{"mpg123", []string{"-q", path}},
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}},
			{"play", []string{"-q", path}}, // SoX
			{"paplay", []string{path}},
			{"aplay", []string{"-q", path}},
		}
		for _, c := range candidates {
			if _, err := p.lookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
		}
		return "", nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	case "windows":
		return "cmd", []string{"/c", "start", "/min", "/wait", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", p.goos)
	}
}
