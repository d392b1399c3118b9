package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sociogram",
	Short: "Sociogram Feed - a local-first social feed in your terminal",
	Long: `Sociogram Feed shows a feed of posts you can like and comment on.

Everything is kept locally under .sociogram/ in the workspace: the feed,
your dark-mode preference, config and logs.

Run without arguments to open the interactive feed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

// postsCmd lists the feed
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts in the feed",
	Args:  cobra.NoArgs,
	RunE:  runPosts,
}

// likeCmd toggles a like
var likeCmd = &cobra.Command{
	Use:   "like [post-id]",
	Short: "Like a post, or unlike it if you already do",
	Args:  cobra.ExactArgs(1),
	RunE:  runLike,
}

// commentCmd appends a comment
var commentCmd = &cobra.Command{
	Use:   "comment [post-id] [text...]",
	Short: "Comment on a post as the current user",
	Example: `  sociogram comment p1 "Great shot!"
  sociogram comment p2 love the colours`,
	Args: cobra.MinimumNArgs(2),
	RunE: runComment,
}

// themeCmd shows or changes the dark-mode preference
var themeCmd = &cobra.Command{
	Use:       "theme [toggle|dark|light]",
	Short:     "Show or change the dark-mode preference",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle", "dark", "light"},
	RunE:      runTheme,
}

// initCmd writes the default config
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sociogram in the current workspace",
	Long: `Creates .sociogram/ and writes a default config.yaml.
Running it again leaves an existing config untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// migrateCmd copies state between backends
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy feed and preference state from one storage driver to another",
	Example: `  sociogram migrate --from file --to sqlite
  sociogram migrate --from sqlite3 --to redis --overwrite`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

var (
	postsJSON        bool
	migrateFrom      string
	migrateTo        string
	migrateOverwrite bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to .sociogram/logs")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.sociogram/config.yaml)")

	postsCmd.Flags().BoolVar(&postsJSON, "json", false, "Print the persisted JSON snapshot")

	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "Source storage driver (default: configured driver)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "Destination storage driver (required)")
	migrateCmd.Flags().BoolVar(&migrateOverwrite, "overwrite", false, "Replace values already in the destination")
	_ = migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
}

// commandContext returns the command's context, or Background when the run
// func is called directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
