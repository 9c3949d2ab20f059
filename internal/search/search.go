// Package search turns a recognized transcript into the destination search
// URL and a display title.
package search

import (
	"errors"
	"net/url"

	"github.com/sunghyunjo/songwhisper/internal/site"
)

// ErrNoTranscript is returned when the transcript is empty. Nothing can be
// searched for, and there is no point opening a browser.
var ErrNoTranscript = errors.New("no transcript recognized")

// titleLimit caps the display title length, in characters.
const titleLimit = 50

// Target is the destination of one automation run.
type Target struct {
	// URL is the search-results page for the transcript.
	URL string
	// Title is the transcript truncated for display. It is never parsed.
	Title string
}

// Build constructs the search Target for a transcript against a site
// profile. The transcript is carried verbatim: no trimming, no case folding.
// Build is pure; calling it twice with the same inputs yields equal Targets.
func Build(transcript string, p site.Profile) (Target, error) {
	if transcript == "" {
		return Target{}, ErrNoTranscript
	}

	q := url.Values{}
	q.Set(p.QueryParam, transcript)

	return Target{
		URL:   p.SearchEndpoint + "?" + q.Encode(),
		Title: title(transcript),
	}, nil
}

func title(transcript string) string {
	r := []rune(transcript)
	if len(r) <= titleLimit {
		return transcript
	}
	return string(r[:titleLimit]) + "..."
}
