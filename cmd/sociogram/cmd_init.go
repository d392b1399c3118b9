package main

import (
	"fmt"
	"os"

	"sociogram/internal/config"

	"github.com/spf13/cobra"
)

// runInit creates .sociogram/ and a default config.
func runInit(cmd *cobra.Command, args []string) error {
	ws, err := resolveWorkspace(workspace)
	if err != nil {
		return err
	}
	path := configPath
	if path == "" {
		path = config.DefaultPath(ws)
	}
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(config.StateDir(ws), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Already initialized: %s\n", path)
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized sociogram in %s\n", config.StateDir(ws))
	fmt.Fprintf(out, "Config written to %s\n", path)
	return nil
}
