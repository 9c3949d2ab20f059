package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCommandFlagRegistration(t *testing.T) {
	t.Parallel()
	commands := []*cobra.Command{findCMD(), transcribeCMD()}

	for _, cmd := range commands {
		if cmd.Flags().Lookup("config") == nil {
			t.Fatalf("%s: --config should be a local flag", cmd.Use)
		}
		// Leaf commands have no subcommands to inherit from; persistent
		// registration there is a smell, not a feature.
		if cmd.PersistentFlags().Lookup("config") != nil {
			t.Fatalf("%s: --config should not be registered persistently", cmd.Use)
		}
	}

	if f := findCMD().Flags(); f.Lookup("text") == nil || f.Lookup("file") == nil || f.Lookup("site") == nil {
		t.Fatalf("find: missing input flags")
	}
	if transcribeCMD().Flags().Lookup("file") == nil {
		t.Fatalf("transcribe: missing --file flag")
	}
}
