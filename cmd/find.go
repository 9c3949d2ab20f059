package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sunghyunjo/songwhisper/config"
	"github.com/sunghyunjo/songwhisper/internal/browser"
	"github.com/sunghyunjo/songwhisper/internal/capture"
	"github.com/sunghyunjo/songwhisper/internal/navigate"
	"github.com/sunghyunjo/songwhisper/internal/recognize"
	"github.com/sunghyunjo/songwhisper/internal/search"
	"github.com/sunghyunjo/songwhisper/internal/site"
)

func findCMD() *cobra.Command {
	var (
		cfgPath  string
		text     string
		wavPath  string
		siteName string
	)
	var find = &cobra.Command{
		Use:   "find",
		Short: "Search for the song and start playback in Chrome",
		Long: `Builds a lyrics search from a transcript (--text) or a recorded clip
(--file), opens the configured music site in Chrome and walks the result
page through to playback. On success the browser is left open, playing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			logger := log.New(os.Stdout, "[songwhisper] ", log.LstdFlags)

			transcript := text
			if transcript == "" && wavPath != "" {
				clip, err := capture.LoadWAV(wavPath)
				if err != nil {
					return err
				}
				res, err := recognize.NewGoogle(cfg.Recognize).Transcribe(cmd.Context(), clip)
				if err != nil {
					return fmt.Errorf("transcribing %s: %w", wavPath, err)
				}
				transcript = res.Text
			}

			if siteName == "" {
				siteName = cfg.Site.Profile
			}
			profile, err := site.ByName(siteName)
			if err != nil {
				return err
			}

			target, err := search.Build(transcript, profile)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			logger.Printf("run %s: searching %s for %q", runID, profile.Name, target.Title)

			// The browser must outlive this command, so it is not tied to
			// the command context.
			sess, err := browser.Launch(context.Background(), cfg.Browser)
			if err != nil {
				return err
			}

			status := navigate.New().Run(cmd.Context(), sess, navigate.Steps(profile, target.URL))
			if status.Outcome == navigate.Aborted {
				sess.Close()
				return fmt.Errorf("run %s: %s", runID, status)
			}

			logger.Printf("run %s: %s, browser left open", runID, status)
			return nil
		},
	}

	find.Flags().StringVar(&text, "text", "", "use this transcript instead of a recording")
	find.Flags().StringVar(&wavPath, "file", "", "recorded WAV clip to transcribe")
	find.Flags().StringVar(&siteName, "site", "", fmt.Sprintf("destination site %v (default from config)", site.Names()))
	find.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return find
}
