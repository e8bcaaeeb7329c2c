package dictation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// CommandRecognizer runs an external speech-to-text program and reads one
// transcript per line from its standard output.
type CommandRecognizer struct {
	Command    string // shell-style command line, split on whitespace
	Continuous bool
}

// NewRecognizer returns a CommandRecognizer for a configured command, or
// Unavailable when none is set.
func NewRecognizer(command string, continuous bool) Recognizer {
	if strings.TrimSpace(command) == "" {
		return Unavailable{}
	}
	return &CommandRecognizer{Command: command, Continuous: continuous}
}

func (c *CommandRecognizer) Start(ctx context.Context) (<-chan Result, error) {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return nil, ErrUnsupported
	}

	//nolint:gosec // G204: the command comes from the user's own config
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("dictation pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("%w: %v", ErrNotAllowed, err)
		default:
			return nil, fmt.Errorf("starting %s: %w", fields[0], err)
		}
	}

	lines, err := (&LineRecognizer{R: stdout, Continuous: c.Continuous}).Start(ctx)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}

	out := make(chan Result)
	go func() {
		defer close(out)
		for r := range lines {
			select {
			case out <- r:
			case <-ctx.Done():
			}
		}
		// the line reader may stop before the program exits
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()
	return out, nil
}

var _ Recognizer = (*CommandRecognizer)(nil)
