package navigate

import (
	"errors"
	"fmt"

	"github.com/sunghyunjo/songwhisper/internal/site"
)

// Stage names, in sequence order. Stages whose selector or flag is unset on
// the profile are left out of the sequence.
const (
	StageOpened   = "Opened"
	StageResults  = "ResultsVisible"
	StageSwitch   = "ContextSwitch"
	StageDismiss  = "InterstitialDismiss"
	StagePlayback = "PlaybackEngage"
)

// Steps builds the interaction sequence for a site profile and a search URL.
// The first two stages are mandatory where present; everything after is
// opportunistic.
func Steps(p site.Profile, url string) []Step {
	steps := []Step{{
		Name:   StageOpened,
		Policy: Abort,
		Settle: p.SettleLoad,
		Run: func(d Driver) error {
			if err := d.Navigate(url); err != nil {
				return fmt.Errorf("%w: %w", ErrPageLoadFailed, err)
			}
			return nil
		},
	}}

	if p.ResultSelector != "" {
		sel := p.ResultSelector
		steps = append(steps, Step{
			Name:   StageResults,
			Policy: Abort,
			Settle: p.SettleResult,
			Run:    func(d Driver) error { return d.Click(sel) },
		})
	}

	if p.SwitchWindow {
		steps = append(steps, Step{
			Name:   StageSwitch,
			Policy: Skip,
			Settle: p.SettleSwitch,
			Run:    switchToSecondary,
		})
	}

	if p.DismissSelector != "" {
		sel := p.DismissSelector
		steps = append(steps, Step{
			Name:   StageDismiss,
			Policy: Skip,
			Settle: p.SettleDismiss,
			Run: func(d Driver) error {
				if err := d.Click(sel); err != nil {
					// Overlays are not guaranteed to appear.
					return benign(err)
				}
				return nil
			},
		})
	}

	steps = append(steps, Step{
		Name:   StagePlayback,
		Policy: Skip,
		Run:    func(d Driver) error { return engagePlayback(d, p.MediaTag, p.PlaySelector) },
	})

	return steps
}

// switchToSecondary activates the first window that is not the current one.
// No disambiguation beyond first match: when several secondary windows
// exist, whichever enumerates first wins. A single open window is the normal
// case and is not a failure.
func switchToSecondary(d Driver) error {
	cur, err := d.CurrentWindow()
	if err != nil {
		return err
	}
	ids, err := d.Windows()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id != cur {
			return d.Activate(id)
		}
	}
	return benign(errors.New("no secondary window, staying on current"))
}
