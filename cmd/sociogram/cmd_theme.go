package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runTheme shows or changes the dark-mode preference.
func runTheme(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	app, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()

	dark := app.Prefs.Enabled()
	if len(args) == 1 {
		switch args[0] {
		case "toggle":
			dark = app.Prefs.Toggle(ctx)
		case "dark":
			dark = app.Prefs.Set(ctx, true)
		case "light":
			dark = app.Prefs.Set(ctx, false)
		default:
			return fmt.Errorf("unknown theme %q (valid: toggle, dark, light)", args[0])
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Dark mode: %s\n", onOff(dark))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
