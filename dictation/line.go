package dictation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// LineRecognizer treats each non-empty line of R as a final transcript, so an
// external speech-to-text tool can be piped in. Unless Continuous is set it
// stops after the first utterance.
type LineRecognizer struct {
	R          io.Reader
	Continuous bool
}

func (l *LineRecognizer) Start(ctx context.Context) (<-chan Result, error) {
	if l.R == nil {
		return nil, ErrUnsupported
	}

	out := make(chan Result)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(l.R)
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			select {
			case out <- Result{Transcript: text, Final: true}:
			case <-ctx.Done():
				return
			}
			if !l.Continuous {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case out <- Result{Err: fmt.Errorf("reading transcript: %w", err)}:
			case <-ctx.Done():
			}
		}
	}()
	return out, nil
}

// Unavailable is the recognizer for systems with no speech input.
type Unavailable struct{}

func (Unavailable) Start(context.Context) (<-chan Result, error) {
	return nil, ErrUnsupported
}

var (
	_ Recognizer = (*LineRecognizer)(nil)
	_ Recognizer = Unavailable{}
)
