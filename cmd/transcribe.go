package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunghyunjo/songwhisper/config"
	"github.com/sunghyunjo/songwhisper/internal/capture"
	"github.com/sunghyunjo/songwhisper/internal/recognize"
)

func transcribeCMD() *cobra.Command {
	var (
		cfgPath string
		wavPath string
	)
	var transcribe = &cobra.Command{
		Use:   "transcribe",
		Short: "Print the lyrics recognized in a recorded WAV clip",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}

			clip, err := capture.LoadWAV(wavPath)
			if err != nil {
				return err
			}

			res, err := recognize.NewGoogle(cfg.Recognize).Transcribe(cmd.Context(), clip)
			if err != nil {
				return err
			}
			if res.Text == "" {
				return fmt.Errorf("no lyrics recognized in %s", wavPath)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.Text)
			return nil
		},
	}

	transcribe.Flags().StringVar(&wavPath, "file", "", "recorded WAV clip to transcribe")
	transcribe.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	_ = transcribe.MarkFlagRequired("file")

	return transcribe
}
