// Package navigate drives a browser session through the ordered interaction
// sequence that turns a search URL into a playing song. The sequence is
// declared as data: an ordered list of steps, each with its own failure
// policy, interpreted by one generic loop. Every step makes exactly one
// locate attempt and one act attempt. There are no retries anywhere: a
// failed optional step is skipped, a failed mandatory step stops the run.
package navigate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

// Sequencer failure sentinels. Only ErrPageLoadFailed stops a run hard;
// ErrPlaybackUnavailable is carried as a detail on a degraded status.
var (
	ErrPageLoadFailed      = errors.New("search page failed to load")
	ErrPlaybackUnavailable = errors.New("playback unavailable")
)

// errBenign marks step failures that are expected in normal runs, such as
// an overlay that never appeared or a second window that never opened. They are
// logged as skipped but do not degrade the run status.
var errBenign = errors.New("benign miss")

func benign(err error) error {
	return fmt.Errorf("%w: %w", errBenign, err)
}

// Driver is the slice of a browser session the sequencer needs. The real
// implementation lives in internal/browser; tests inject fakes.
type Driver interface {
	// Navigate points the active window at url.
	Navigate(url string) error
	// Click locates the element matched by sel (XPath or CSS) once and
	// clicks it.
	Click(sel string) error
	// Windows lists the ids of all open page windows.
	Windows() ([]string, error)
	// CurrentWindow reports the id of the active window.
	CurrentWindow() (string, error)
	// Activate gives focus to the window with the given id.
	Activate(id string) error
	// PlayMedia invokes play() on the first media element of the given tag
	// in the active window, bypassing the UI.
	PlayMedia(tag string) error
}

// Policy declares what a step's failure does to the sequence.
type Policy int

const (
	// Abort stops the sequence; no later step runs.
	Abort Policy = iota
	// Skip lets the sequence continue past the failure.
	Skip
)

func (p Policy) String() string {
	if p == Abort {
		return "abort"
	}
	return "skip"
}

// Step is one locate+act unit of the sequence.
type Step struct {
	Name   string
	Policy Policy
	Run    func(d Driver) error
	// Settle is slept after the step, successful or skipped. Result pages
	// render asynchronously with nothing observable to wait on, so these
	// are fixed delays.
	Settle time.Duration
}

// Sequencer interprets a step list against a Driver.
type Sequencer struct {
	Logger *log.Logger
	// Sleep is replaceable so tests run with zero delay.
	Sleep func(time.Duration)
}

// New returns a Sequencer with the default logger and real sleeps.
func New() *Sequencer {
	return &Sequencer{
		Logger: log.New(os.Stdout, "[navigate] ", log.LstdFlags),
		Sleep:  time.Sleep,
	}
}

// Run executes the steps in order. The ctx is consulted between steps only;
// a settle delay that has started is not interruptible. Run never closes the
// driver: the session stays with whoever launched it.
func (s *Sequencer) Run(ctx context.Context, d Driver, steps []Step) Status {
	st := Status{Outcome: FullSuccess}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return Status{Outcome: Aborted, Stage: step.Name, Detail: err}
		}

		err := step.Run(d)
		switch {
		case err == nil:
			s.Logger.Printf("%s: ok", step.Name)
		case step.Policy == Abort:
			s.Logger.Printf("%s: failed, stopping: %v", step.Name, err)
			return Status{Outcome: Aborted, Stage: step.Name, Detail: err}
		case errors.Is(err, errBenign):
			s.Logger.Printf("%s: skipped: %v", step.Name, err)
		default:
			s.Logger.Printf("%s: failed, skipping: %v", step.Name, err)
			st.Outcome = PartialSuccess
			st.Stage = step.Name
			st.Detail = err
		}

		if step.Settle > 0 {
			s.Sleep(step.Settle)
		}
	}
	return st
}
