package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{
		Use:   "songwhisper",
		Short: "Find and play a song from a sung snippet of its lyrics",
	}

	root.AddCommand(findCMD(), transcribeCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
