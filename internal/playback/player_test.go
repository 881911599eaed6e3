package playback

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/aksharmala/internal/testutil"
)

func fakePlayer(goos string, installed ...string) (*CommandPlayer, *[]string) {
	var ran []string
	p := &CommandPlayer{
		goos: goos,
		lookPath: func(name string) (string, error) {
			for _, n := range installed {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", exec.ErrNotFound
		},
		run: func(cmd *exec.Cmd) error {
			ran = append(ran, strings.Join(cmd.Args, " "))
			return nil
		},
	}
	return p, &ran
}

func TestCommandPlayerMissingFile(t *testing.T) {
	p, ran := fakePlayer("linux", "mpg123")

	err := p.Play(context.Background(), filepath.Join(t.TempDir(), "ka.mp3"))
	if !errors.Is(err, ErrMissingFile) {
		t.Errorf("Play() error = %v, want ErrMissingFile", err)
	}
	if len(*ran) != 0 {
		t.Errorf("player ran for a missing file: %v", *ran)
	}
}

func TestCommandPlayerEmptyFile(t *testing.T) {
	p, _ := fakePlayer("linux", "mpg123")
	path := filepath.Join(t.TempDir(), "ka.mp3")
	testutil.CreateTestFile(t, path, nil)

	if err := p.Play(context.Background(), path); err == nil {
		t.Error("Play() expected error for empty file")
	}
}

func TestCommandPlayerCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ka.mp3")
	testutil.CreateTestFile(t, path, testutil.MockMP3())

	tests := []struct {
		name      string
		goos      string
		installed []string
		want      string
		wantErr   bool
	}{
		{"macOS", "darwin", nil, "afplay " + path, false},
		{"linux mpg123", "linux", []string{"aplay", "mpg123"}, "mpg123 -q " + path, false},
		{"linux ffplay", "linux", []string{"ffplay", "paplay"}, "ffplay -nodisp -autoexit -loglevel quiet " + path, false},
		{"linux aplay", "linux", []string{"aplay"}, "aplay -q " + path, false},
		{"linux nothing", "linux", nil, "", true},
		{"plan9", "plan9", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ran := fakePlayer(tt.goos, tt.installed...)
			err := p.Play(context.Background(), path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Play() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(*ran) != 1 || (*ran)[0] != tt.want {
				t.Errorf("ran %v, want %q", *ran, tt.want)
			}
		})
	}
}

func TestCommandPlayerRunError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ka.mp3")
	testutil.CreateTestFile(t, path, testutil.MockMP3())
	p, _ := fakePlayer("darwin")
	p.run = func(cmd *exec.Cmd) error { return errors.New("exit status 1") }

	err := p.Play(context.Background(), path)
	if err == nil || !strings.Contains(err.Error(), "afplay failed") {
		t.Errorf("Play() error = %v", err)
	}
}
