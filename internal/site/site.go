// Package site declares the destination-site profiles the automation can
// drive. A profile carries the search endpoint, the element selectors for
// each navigation stage and the settle delay after each stage. Stages whose
// selector is empty (or whose flag is false) are omitted from the sequence
// entirely.
package site

import (
	"fmt"
	"strings"
	"time"
)

// Profile describes one destination site.
type Profile struct {
	Name string

	// SearchEndpoint plus QueryParam form the search URL:
	// endpoint?param=<encoded transcript>.
	SearchEndpoint string
	QueryParam     string

	// ResultSelector locates the first playable result on the search page.
	// Empty means the search page itself is the playback page.
	ResultSelector string

	// SwitchWindow is set when clicking the result opens a separate player
	// window that must be activated before further interaction.
	SwitchWindow bool

	// DismissSelector locates the close control of a login/consent overlay.
	// Empty means no overlay is expected.
	DismissSelector string

	// PlaySelector locates the player's play control. Empty means playback
	// is expected to start on its own; only the media fallback is attempted.
	PlaySelector string

	// MediaTag is the tag name of the media element targeted by the
	// playback fallback ("video" or "audio").
	MediaTag string

	// Settle delays, applied after the corresponding stage. Result pages
	// render asynchronously with nothing to poll for, so these are fixed
	// waits, not readiness checks.
	SettleLoad    time.Duration
	SettleResult  time.Duration
	SettleSwitch  time.Duration
	SettleDismiss time.Duration
}

// YouTube searches video results and clicks the first Shorts link; Shorts
// normally autoplay, so there is no play control to click.
var YouTube = Profile{
	Name:           "youtube",
	SearchEndpoint: "https://www.youtube.com/results",
	QueryParam:     "search_query",
	ResultSelector: `(//a[contains(@href, "/shorts/")])[1]`,
	MediaTag:       "video",
	SettleLoad:     5 * time.Second,
	SettleResult:   5 * time.Second,
}

// Bugs searches lyrics on Bugs Music. Clicking the listen button opens a
// separate web-player window, which may show a login overlay before the play
// control becomes reachable.
var Bugs = Profile{
	Name:            "bugs",
	SearchEndpoint:  "https://music.bugs.co.kr/search/lyrics",
	QueryParam:      "q",
	ResultSelector:  `(//a[contains(@class,"btn play")])[1]`,
	SwitchWindow:    true,
	DismissSelector: `//button[contains(@class,"btnClose") and (contains(text(),"닫기") or contains(@aria-label,"닫기"))]`,
	PlaySelector:    `//button[contains(@class,"btnPlay") or contains(text(),"재생")]`,
	MediaTag:        "audio",
	SettleLoad:      5 * time.Second,
	SettleResult:    7 * time.Second,
	SettleSwitch:    4 * time.Second,
	SettleDismiss:   2 * time.Second,
}

// ByName resolves a built-in profile by its name, case-insensitively.
func ByName(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "youtube":
		return YouTube, nil
	case "bugs":
		return Bugs, nil
	}
	return Profile{}, fmt.Errorf("unknown site profile %q", name)
}

// Names lists the built-in profile names.
func Names() []string {
	return []string{YouTube.Name, Bugs.Name}
}
