package player

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoPlayer is returned when no audio player is installed
var ErrNoPlayer = errors.New("no audio player found")

// known players in order of preference, file path is appended as last argument
var knownPlayers = [][]string{
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpg123", "-q"},
	{"mpv", "--no-video", "--really-quiet"},
	{"afplay"},
}

// Command plays audio files with external program and waits until it exits
type Command struct {
	args []string
}

// Play plays audio file
func (c Command) Play(ctx context.Context, path string) error {
	if len(c.args) == 0 {
		return ErrNoPlayer
	}
	args := append(append([]string(nil), c.args[1:]...), path)
	out, err := exec.CommandContext(ctx, c.args[0], args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("run %s: %w: %s", c.args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Name returns player program name
func (c Command) Name() string {
	if len(c.args) == 0 {
		return ""
	}
	return c.args[0]
}

// New creates player from command line like "mpg123 -q".
// Empty command line detects first installed known player.
func New(commandLine string) (Command, error) {
	if args := strings.Fields(commandLine); len(args) > 0 {
		return Command{args: args}, nil
	}
	return detect(exec.LookPath)
}

func detect(lookPath func(string) (string, error)) (Command, error) {
	for _, args := range knownPlayers {
		if _, err := lookPath(args[0]); err == nil {
			return Command{args: args}, nil
		}
	}
	return Command{}, ErrNoPlayer
}
