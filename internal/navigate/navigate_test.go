package navigate

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/sunghyunjo/songwhisper/internal/site"
)

// fakeDriver is an in-memory Driver double recording every interaction.
type fakeDriver struct {
	navErr      error
	clickErr    map[string]error
	activateErr error
	playErr     error

	windows []string
	current string

	navigated []string
	clicks    []string
	activated []string
	playCalls int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		clickErr: map[string]error{},
		windows:  []string{"w0"},
		current:  "w0",
	}
}

func (d *fakeDriver) Navigate(url string) error {
	d.navigated = append(d.navigated, url)
	return d.navErr
}

func (d *fakeDriver) Click(sel string) error {
	d.clicks = append(d.clicks, sel)
	return d.clickErr[sel]
}

func (d *fakeDriver) Windows() ([]string, error) { return d.windows, nil }

func (d *fakeDriver) CurrentWindow() (string, error) { return d.current, nil }

func (d *fakeDriver) Activate(id string) error {
	if d.activateErr != nil {
		return d.activateErr
	}
	d.activated = append(d.activated, id)
	d.current = id
	return nil
}

func (d *fakeDriver) PlayMedia(tag string) error {
	d.playCalls++
	return d.playErr
}

func testSequencer() *Sequencer {
	return &Sequencer{
		Logger: log.New(io.Discard, "", 0),
		Sleep:  func(time.Duration) {},
	}
}

func zeroDelays(p site.Profile) site.Profile {
	p.SettleLoad = 0
	p.SettleResult = 0
	p.SettleSwitch = 0
	p.SettleDismiss = 0
	return p
}

func TestStepsPerProfile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		profile site.Profile
		want    []string
	}{
		{
			name:    "youtube has no switch dismiss or play click",
			profile: site.YouTube,
			want:    []string{StageOpened, StageResults, StagePlayback},
		},
		{
			name:    "bugs carries the full sequence",
			profile: site.Bugs,
			want:    []string{StageOpened, StageResults, StageSwitch, StageDismiss, StagePlayback},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			steps := Steps(tt.profile, "http://example.com")
			if len(steps) != len(tt.want) {
				t.Fatalf("Steps() has %d steps, want %d", len(steps), len(tt.want))
			}
			for i, step := range steps {
				if step.Name != tt.want[i] {
					t.Fatalf("step %d = %q, want %q", i, step.Name, tt.want[i])
				}
			}
		})
	}
}

func TestRunFullSuccess(t *testing.T) {
	t.Parallel()
	d := newFakeDriver()
	d.windows = []string{"w0", "w1"}

	status := testSequencer().Run(context.Background(), d,
		Steps(zeroDelays(site.Bugs), "http://example.com/search"))

	if status.Outcome != FullSuccess {
		t.Fatalf("Run() = %v, want full success", status)
	}
	if len(d.navigated) != 1 || d.navigated[0] != "http://example.com/search" {
		t.Fatalf("navigated = %v", d.navigated)
	}
	if len(d.activated) != 1 || d.activated[0] != "w1" {
		t.Fatalf("activated = %v, want [w1]", d.activated)
	}
	// Play control clicked, so the media fallback never ran.
	if d.playCalls != 0 {
		t.Fatalf("playCalls = %d, want 0", d.playCalls)
	}
}

func TestRunAbortsOnPageLoad(t *testing.T) {
	t.Parallel()
	d := newFakeDriver()
	d.navErr = errors.New("net::ERR_CONNECTION_REFUSED")

	status := testSequencer().Run(context.Background(), d,
		Steps(zeroDelays(site.YouTube), "http://example.com"))

	if status.Outcome != Aborted || status.Stage != StageOpened {
		t.Fatalf("Run() = %v, want abort at %s", status, StageOpened)
	}
	if !errors.Is(status.Detail, ErrPageLoadFailed) {
		t.Fatalf("detail = %v, want ErrPageLoadFailed", status.Detail)
	}
	if len(d.clicks) != 0 || d.playCalls != 0 {
		t.Fatalf("steps ran after abort: clicks=%v playCalls=%d", d.clicks, d.playCalls)
	}
}

func TestRunAbortsOnMissingResult(t *testing.T) {
	t.Parallel()
	d := newFakeDriver()
	d.clickErr[site.Bugs.ResultSelector] = errors.New("element not found")

	status := testSequencer().Run(context.Background(), d,
		Steps(zeroDelays(site.Bugs), "http://example.com"))

	if status.Outcome != Aborted || status.Stage != StageResults {
		t.Fatalf("Run() = %v, want abort at %s", status, StageResults)
	}
	// None of the later stages may run once a mandatory step failed.
	if len(d.activated) != 0 {
		t.Fatalf("window switch ran after abort: %v", d.activated)
	}
	if len(d.clicks) != 1 {
		t.Fatalf("clicks = %v, want the result lookup only", d.clicks)
	}
	if d.playCalls != 0 {
		t.Fatalf("playCalls = %d, want 0", d.playCalls)
	}
}

func TestRunFallbackOnPlayControlFailure(t *testing.T) {
	t.Parallel()
	d := newFakeDriver()
	d.windows = []string{"w0", "w1"}
	d.clickErr[site.Bugs.PlaySelector] = errors.New("element not found")

	status := testSequencer().Run(context.Background(), d,
		Steps(zeroDelays(site.Bugs), "http://example.com"))

	if status.Outcome != FullSuccess {
		t.Fatalf("Run() = %v, want full success via fallback", status)
	}
	if d.playCalls != 1 {
		t.Fatalf("playCalls = %d, want exactly 1", d.playCalls)
	}
}

func TestRunPlaybackUnavailable(t *testing.T) {
	t.Parallel()
	d := newFakeDriver()
	d.windows = []string{"w0", "w1"}
	d.clickErr[site.Bugs.PlaySelector] = errors.New("element not found")
	d.playErr = errors.New("no <audio> element on page")

	status := testSequencer().Run(context.Background(), d,
		Steps(zeroDelays(site.Bugs), "http://example.com"))

	if status.Outcome != PartialSuccess || status.Stage != StagePlayback {
		t.Fatalf("Run() = %v, want partial success at %s", status, StagePlayback)
	}
	if !errors.Is(status.Detail, ErrPlaybackUnavailable) {
		t.Fatalf("detail = %v, want ErrPlaybackUnavailable", status.Detail)
	}
	if d.playCalls != 1 {
		t.Fatalf("playCalls = %d, want exactly 1", d.playCalls)
	}
}

func TestRunSingleWindowIsNotAFailure(t *testing.T) {
	t.Parallel()
	d := newFakeDriver()

	status := testSequencer().Run(context.Background(), d,
		Steps(zeroDelays(site.Bugs), "http://example.com"))

	if status.Outcome != FullSuccess {
		t.Fatalf("Run() = %v, want full success with a single window", status)
	}
	if len(d.activated) != 0 {
		t.Fatalf("activated = %v, want none", d.activated)
	}
}

func TestRunSwitchPicksFirstOtherWindow(t *testing.T) {
	t.Parallel()
	d := newFakeDriver()
	d.windows = []string{"w0", "w1", "w2"}

	testSequencer().Run(context.Background(), d,
		Steps(zeroDelays(site.Bugs), "http://example.com"))

	if len(d.activated) != 1 || d.activated[0] != "w1" {
		t.Fatalf("activated = %v, want first non-original window [w1]", d.activated)
	}
}

func TestRunMissingOverlayIsSkipped(t *testing.T) {
	t.Parallel()
	d := newFakeDriver()
	d.windows = []string{"w0", "w1"}
	d.clickErr[site.Bugs.DismissSelector] = errors.New("element not found")

	status := testSequencer().Run(context.Background(), d,
		Steps(zeroDelays(site.Bugs), "http://example.com"))

	if status.Outcome != FullSuccess {
		t.Fatalf("Run() = %v, want full success when overlay never appeared", status)
	}
}

func TestRunSleepsSettleDelays(t *testing.T) {
	t.Parallel()
	var slept []time.Duration
	s := &Sequencer{
		Logger: log.New(io.Discard, "", 0),
		Sleep:  func(d time.Duration) { slept = append(slept, d) },
	}

	d := newFakeDriver()
	s.Run(context.Background(), d, Steps(site.YouTube, "http://example.com"))

	want := []time.Duration{site.YouTube.SettleLoad, site.YouTube.SettleResult}
	if len(slept) != len(want) {
		t.Fatalf("slept %v, want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("slept %v, want %v", slept, want)
		}
	}
}
