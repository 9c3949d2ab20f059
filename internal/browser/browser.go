// Package browser launches and wraps the Chrome session the navigation
// sequence runs against. The launch profile is fixed before the process
// starts: persistent user profile, autoplay without a user gesture, and the
// automation fingerprint suppressed so music sites treat the session as a
// signed-in user.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"

	"github.com/sunghyunjo/songwhisper/config"
)

// ErrLaunchFailed is returned when the Chrome process or its debugging
// channel cannot be brought up. No browser resources are held afterwards.
var ErrLaunchFailed = errors.New("browser launch failed")

// Session is a live Chrome instance with one or more windows, exactly one of
// which is active. It satisfies the navigation sequencer's Driver interface.
type Session struct {
	lookupTimeout time.Duration
	logger        *log.Logger

	allocCancel context.CancelFunc
	browserCtx  context.Context

	active   context.Context
	activeID target.ID
	cancels  []context.CancelFunc
}

// Launch spawns a configured Chrome process and returns a Session holding
// its first window. The process outlives the call; it is torn down only by
// Close. ctx must stay alive for as long as the session is used; cancelling
// it kills the browser.
func Launch(ctx context.Context, cfg config.BrowserConfig) (*Session, error) {
	logger := log.New(os.Stdout, "[browser] ", log.LstdFlags)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("autoplay-policy", "no-user-gesture-required"),
		// Hide the automation switches and the AutomationControlled
		// marker; some players refuse to start for webdriver clients.
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if cfg.UserDataDir != "" {
		opts = append(opts,
			chromedp.UserDataDir(cfg.UserDataDir),
			chromedp.Flag("profile-directory", cfg.ProfileName),
		)
	}

	actx, acancel := chromedp.NewExecAllocator(ctx, opts...)
	bctx, bcancel := chromedp.NewContext(actx)
	if err := chromedp.Run(bctx); err != nil {
		bcancel()
		acancel()
		return nil, fmt.Errorf("%w: %v", ErrLaunchFailed, err)
	}

	c := chromedp.FromContext(bctx)
	s := &Session{
		lookupTimeout: cfg.LookupTimeout,
		logger:        logger,
		allocCancel:   acancel,
		browserCtx:    bctx,
		active:        bctx,
		activeID:      c.Target.TargetID,
		cancels:       []context.CancelFunc{bcancel},
	}
	logger.Printf("chrome up, window %s", s.activeID)
	return s, nil
}

// Navigate points the active window at url.
func (s *Session) Navigate(url string) error {
	return chromedp.Run(s.active, chromedp.Navigate(url))
}

// Click locates the element matched by sel once and clicks it. XPath
// selectors (leading "/" or "(") go through the DOM search API, everything
// else is a CSS query. The lookup is bounded by the configured timeout; it
// is not retried.
func (s *Session) Click(sel string) error {
	ctx, cancel := context.WithTimeout(s.active, s.lookupTimeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Click(sel, byMatcher(sel), chromedp.NodeVisible))
}

func byMatcher(sel string) chromedp.QueryOption {
	if strings.HasPrefix(sel, "/") || strings.HasPrefix(sel, "(") {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// Windows lists the ids of all open page windows, in enumeration order.
func (s *Session) Windows() ([]string, error) {
	infos, err := chromedp.Targets(s.active)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, info := range infos {
		if info.Type == "page" {
			ids = append(ids, string(info.TargetID))
		}
	}
	return ids, nil
}

// CurrentWindow reports the id of the active window.
func (s *Session) CurrentWindow() (string, error) {
	return string(s.activeID), nil
}

// Activate attaches to the window with the given id, raises it, and makes it
// the target of subsequent calls.
func (s *Session) Activate(id string) error {
	tid := target.ID(id)
	if tid == s.activeID {
		return nil
	}

	wctx, wcancel := chromedp.NewContext(s.browserCtx, chromedp.WithTargetID(tid))
	raise := chromedp.ActionFunc(func(ctx context.Context) error {
		return target.ActivateTarget(tid).Do(ctx)
	})
	if err := chromedp.Run(wctx, raise); err != nil {
		wcancel()
		return fmt.Errorf("activating window %s: %w", id, err)
	}

	s.cancels = append(s.cancels, wcancel)
	s.active = wctx
	s.activeID = tid
	s.logger.Printf("switched to window %s", id)
	return nil
}

// PlayMedia invokes play() on the first media element of the given tag in
// the active window. This is an out-of-band script call, not a simulated
// click; playback is presumed started if the element exists, with no
// confirmation polling.
func (s *Session) PlayMedia(tag string) error {
	ctx, cancel := context.WithTimeout(s.active, s.lookupTimeout)
	defer cancel()

	js := fmt.Sprintf(
		`(function(){var m=document.getElementsByTagName(%q);if(m.length===0){return false}m[0].play();return true})()`,
		tag)
	var found bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &found)); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no <%s> element on page", tag)
	}
	return nil
}

// Close tears down every window context and the Chrome process itself. Only
// hard-failure paths call this; on success the browser is left open with the
// music playing.
func (s *Session) Close() {
	for i := len(s.cancels) - 1; i >= 0; i-- {
		s.cancels[i]()
	}
	s.allocCancel()
}
