// Package dictation captures spoken task text through a pluggable recognizer.
package dictation

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrUnsupported means no recognizer is available on this system.
	ErrUnsupported = errors.New("speech recognition is not supported")
	// ErrNotAllowed means the recognizer was denied microphone access.
	ErrNotAllowed = errors.New("microphone access denied")
)

// User-facing messages. Every failure is recoverable by starting again.
const (
	MsgUnsupported  = "Speech recognition is not supported on this system."
	MsgNotAllowed   = "Microphone access denied. Please allow microphone access to use voice input."
	MsgListenFailed = "Error occurred while listening. Please try again."
	MsgStartFailed  = "Error starting voice recognition. Please try again."
)

// Result is one recognition update. A non-nil Err ends the session.
type Result struct {
	Transcript string
	Final      bool
	Err        error
}

// Recognizer produces results until the returned channel is closed or ctx ends.
type Recognizer interface {
	Start(ctx context.Context) (<-chan Result, error)
}

// Session tracks one recognizer's listening state, latest transcript and
// last error message.
type Session struct {
	mu         sync.Mutex
	recognizer Recognizer
	listening  bool
	transcript string
	errMsg     string
	cancel     context.CancelFunc
	done       chan struct{}
	onChange   func()
}

// NewSession wraps rec. A nil rec behaves as an unsupported system.
func NewSession(rec Recognizer) *Session {
	return &Session{recognizer: rec}
}

// OnChange registers a callback run after every state change.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Start begins listening. Any previous error is cleared first.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.listening {
		s.mu.Unlock()
		return nil
	}
	s.errMsg = ""

	if s.recognizer == nil {
		s.errMsg = MsgUnsupported
		s.mu.Unlock()
		s.changed()
		return ErrUnsupported
	}

	runCtx, cancel := context.WithCancel(ctx)
	results, err := s.recognizer.Start(runCtx)
	if err != nil {
		cancel()
		s.errMsg = messageFor(err, MsgStartFailed)
		s.mu.Unlock()
		slog.Warn("dictation start failed", "error", err)
		s.changed()
		return err
	}

	s.listening = true
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()
	s.changed()

	go s.consume(results, done)
	return nil
}

func (s *Session) consume(results <-chan Result, done chan struct{}) {
	defer close(done)
	for r := range results {
		s.mu.Lock()
		if r.Err != nil {
			s.errMsg = messageFor(r.Err, MsgListenFailed)
			s.mu.Unlock()
			slog.Warn("dictation error", "error", r.Err)
			s.changed()
			break
		}
		s.transcript = r.Transcript
		s.mu.Unlock()
		s.changed()
	}

	s.mu.Lock()
	// a newer run may have started after Stop
	if s.done == done {
		s.listening = false
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
	}
	s.mu.Unlock()
	s.changed()
}

// Stop ends listening. The transcript is kept.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.listening = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.changed()
}

// Wait blocks until the current listening run ends or ctx is done.
func (s *Session) Wait(ctx context.Context) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Reset clears the transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	s.transcript = ""
	s.mu.Unlock()
	s.changed()
}

func (s *Session) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// Error returns the last user-facing error message, or "".
func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Session) changed() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func messageFor(err error, fallback string) string {
	switch {
	case errors.Is(err, ErrUnsupported):
		return MsgUnsupported
	case errors.Is(err, ErrNotAllowed):
		return MsgNotAllowed
	default:
		return fallback
	}
}
