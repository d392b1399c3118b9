package main

import (
	"fmt"
	"strings"
	"time"

	"sociogram/cmd/sociogram/ui"
	"sociogram/internal/feed"

	"github.com/spf13/cobra"
)

// runPosts prints the feed.
func runPosts(cmd *cobra.Command, args []string) error {
	app, err := openApp(commandContext(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()

	out := cmd.OutOrStdout()
	posts := app.Feed.Posts()

	if postsJSON {
		raw, err := feed.EncodePosts(posts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, raw)
		return nil
	}

	if len(posts) == 0 {
		fmt.Fprintln(out, ui.EmptyFeedMessage)
		return nil
	}

	me := app.Feed.CurrentUserID()
	now := time.Now()
	for _, p := range posts {
		heart := "♡"
		if p.LikedBy(me) {
			heart = "♥"
		}
		fmt.Fprintf(out, "%s  %s · %s  %s %d  💬 %d\n", p.ID, p.Username, ui.TimeAgo(p.CreatedAt, now), heart, p.LikeCount(), p.CommentCount())
		if p.Caption != "" {
			fmt.Fprintf(out, "    %s\n", p.Caption)
		}
		for _, c := range p.Comments {
			fmt.Fprintf(out, "    └ %s: %s\n", c.Username, c.Text)
		}
	}
	return nil
}

// runLike toggles the current user's like on a post.
func runLike(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	app, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()

	postID := args[0]
	if _, ok := app.Feed.Post(postID); !ok {
		return fmt.Errorf("post %q not found", postID)
	}

	app.Feed.ToggleLike(ctx, postID)
	p, _ := app.Feed.Post(postID)

	verb := "Unliked"
	if p.LikedBy(app.Feed.CurrentUserID()) {
		verb = "Liked"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d likes)\n", verb, postID, p.LikeCount())
	warnUnsaved(cmd, app)
	return nil
}

// runComment appends a comment by the current user.
func runComment(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	text := strings.TrimSpace(joinArgs(args[1:]))
	if text == "" {
		return fmt.Errorf("comment text is empty")
	}

	app, err := openApp(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()

	postID := args[0]
	if _, ok := app.Feed.Post(postID); !ok {
		return fmt.Errorf("post %q not found", postID)
	}

	user := app.CurrentUser()
	app.Feed.AddComment(ctx, postID, text, user.Username, user.AvatarURL)
	p, _ := app.Feed.Post(postID)

	fmt.Fprintf(cmd.OutOrStdout(), "Commented on %s as %s (%d comments)\n", postID, user.Username, p.CommentCount())
	warnUnsaved(cmd, app)
	return nil
}

// warnUnsaved tells the user when the last change only lives in memory.
func warnUnsaved(cmd *cobra.Command, app *App) {
	if app.Feed.PersistFailures() > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: change could not be saved; see logs")
	}
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
