package feed

import (
	"strings"
	"time"

	"sociogram/internal/types"
)

// Action is an intent dispatched against the post collection.
type Action interface {
	isAction()
}

// ToggleLikeAction flips UserID's membership in the post's like set. An
// empty UserID means the current session user.
type ToggleLikeAction struct {
	PostID string
	UserID string
}

// AddCommentAction appends a comment authored by the current session user.
type AddCommentAction struct {
	PostID    string
	Text      string
	Username  string
	AvatarURL string
}

func (ToggleLikeAction) isAction() {}
func (AddCommentAction) isAction() {}

// Env is what Reduce needs beyond the posts themselves.
type Env struct {
	UserID string
	IDs    IDGenerator
	Now    func() time.Time
}

// PersistIntent asks the driver to write Posts under the feed key.
type PersistIntent struct {
	Posts []types.Post
}

// Reduce applies one action. It never mutates posts. A nil intent means the
// action changed nothing and nothing should be written.
func Reduce(posts []types.Post, action Action, env Env) ([]types.Post, *PersistIntent) {
	var (
		next    []types.Post
		changed bool
	)

	switch a := action.(type) {
	case ToggleLikeAction:
		user := a.UserID
		if user == "" {
			user = env.UserID
		}
		next, changed = ToggleLike(posts, a.PostID, user)

	case AddCommentAction:
		if strings.TrimSpace(a.Text) == "" {
			return posts, nil
		}
		idx := types.FindPost(posts, a.PostID)
		if idx < 0 {
			return posts, nil
		}
		c := types.Comment{
			ID:        uniqueID(posts, env.IDs),
			PostID:    a.PostID,
			UserID:    env.UserID,
			Username:  a.Username,
			AvatarURL: a.AvatarURL,
			Text:      a.Text,
			CreatedAt: commentTime(posts[idx], env.Now),
		}
		next, changed = AppendComment(posts, a.PostID, c)
	}

	if !changed {
		return posts, nil
	}
	return next, &PersistIntent{Posts: next}
}

// ToggleLike returns a new collection in which userID's like on postID is
// flipped. Posts other than the target are shared with the input. Unknown
// posts return the input unchanged.
func ToggleLike(posts []types.Post, postID, userID string) ([]types.Post, bool) {
	idx := types.FindPost(posts, postID)
	if idx < 0 || userID == "" {
		return posts, false
	}

	target := posts[idx]
	likes := make([]string, 0, len(target.Likes)+1)
	found := false
	for _, id := range target.Likes {
		if id == userID {
			found = true
			continue
		}
		likes = append(likes, id)
	}
	if !found {
		likes = append(likes, userID)
	}
	target.Likes = likes

	return replaceAt(posts, idx, target), true
}

// AppendComment returns a new collection with c appended to postID's
// comments.
func AppendComment(posts []types.Post, postID string, c types.Comment) ([]types.Post, bool) {
	idx := types.FindPost(posts, postID)
	if idx < 0 {
		return posts, false
	}

	target := posts[idx]
	comments := make([]types.Comment, len(target.Comments), len(target.Comments)+1)
	copy(comments, target.Comments)
	target.Comments = append(comments, c)

	return replaceAt(posts, idx, target), true
}

func replaceAt(posts []types.Post, idx int, p types.Post) []types.Post {
	next := make([]types.Post, len(posts))
	copy(next, posts)
	next[idx] = p
	return next
}

// uniqueID draws from ids until it gets one no comment in posts already uses.
func uniqueID(posts []types.Post, ids IDGenerator) string {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	taken := make(map[string]bool)
	for _, p := range posts {
		for _, c := range p.Comments {
			taken[c.ID] = true
		}
	}
	for {
		id := ids.NewID()
		if !taken[id] {
			return id
		}
	}
}

// commentTime is now, clamped so it never precedes the post's last comment.
func commentTime(p types.Post, now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	t := now().UTC()
	if last, ok := p.LastComment(); ok {
		if prev, err := types.ParseTimestamp(last.CreatedAt); err == nil && t.Before(prev) {
			t = prev
		}
	}
	return types.FormatTimestamp(t)
}
