// Package capture owns the recording lifecycle: a Session gathers audio
// frames from a Source between Start and Stop and hands back the finalized
// clip. All recording state lives on the Session: no package globals, no
// shared flags between the capture goroutine and its caller.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoAudio means the session stopped without receiving any frames.
	ErrNoAudio = errors.New("no audio captured")
	// ErrSessionState means Start or Stop was called out of order.
	ErrSessionState = errors.New("invalid capture session state")
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateRecording
	stateStopped
)

// Source delivers audio frames to a capture session. Record must invoke emit
// for every frame until ctx is cancelled or the source is exhausted, then
// return. Frames are mono 16-bit samples.
type Source interface {
	Record(ctx context.Context, emit func(frame []int16)) error
}

// Session is a single-use recording: idle until Start, recording until Stop,
// then spent. Create a new Session for every recording.
type Session struct {
	src  Source
	rate int

	mu     sync.Mutex
	state  sessionState
	frames [][]int16

	cancel context.CancelFunc
	done   chan struct{}
	srcErr error
}

// NewSession prepares a recording from src at the given sample rate.
func NewSession(src Source, sampleRate int) *Session {
	return &Session{src: src, rate: sampleRate}
}

// Start begins recording in the background and returns immediately. Starting
// a running or spent session is an error.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateIdle {
		return fmt.Errorf("%w: start on %v session", ErrSessionState, s.state)
	}
	s.state = stateRecording

	rctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		err := s.src.Record(rctx, s.append)
		s.mu.Lock()
		if err != nil && !errors.Is(err, context.Canceled) {
			s.srcErr = err
		}
		s.mu.Unlock()
	}()
	return nil
}

func (s *Session) append(frame []int16) {
	cp := make([]int16, len(frame))
	copy(cp, frame)
	s.mu.Lock()
	if s.state == stateRecording {
		s.frames = append(s.frames, cp)
	}
	s.mu.Unlock()
}

// Stop ends the recording, waits for the source to wind down, and returns
// the finalized clip. A session that never received audio reports ErrNoAudio.
func (s *Session) Stop() (Clip, error) {
	s.mu.Lock()
	if s.state != stateRecording {
		s.mu.Unlock()
		return Clip{}, fmt.Errorf("%w: stop on %v session", ErrSessionState, s.state)
	}
	s.state = stateStopped
	s.mu.Unlock()

	s.cancel()
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srcErr != nil {
		return Clip{}, fmt.Errorf("capture source: %w", s.srcErr)
	}
	if len(s.frames) == 0 {
		return Clip{}, ErrNoAudio
	}

	var n int
	for _, f := range s.frames {
		n += len(f)
	}
	samples := make([]int16, 0, n)
	for _, f := range s.frames {
		samples = append(samples, f...)
	}
	return Clip{Samples: samples, SampleRate: s.rate}, nil
}

func (st sessionState) String() string {
	switch st {
	case stateIdle:
		return "idle"
	case stateRecording:
		return "recording"
	case stateStopped:
		return "stopped"
	}
	return "unknown"
}
