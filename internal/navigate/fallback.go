package navigate

import "fmt"

// engagePlayback clicks the profile's play control if it has one, and falls
// back to invoking the first media element's play() directly when the
// control cannot be engaged (or the profile never had one; some sites
// autoplay and only need the nudge). The fallback runs at most once per
// sequence; its failure is reported as ErrPlaybackUnavailable and leaves the
// session open on whatever page was reached.
func engagePlayback(d Driver, tag, playSelector string) error {
	if playSelector != "" {
		if err := d.Click(playSelector); err == nil {
			return nil
		}
	}
	if err := d.PlayMedia(tag); err != nil {
		return fmt.Errorf("%w: %w", ErrPlaybackUnavailable, err)
	}
	return nil
}
