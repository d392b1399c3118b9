// Package types provides the feed data model shared by the store, the seed
// dataset and the terminal UI.
// Types in this package are plain values with JSON tags matching the persisted
// snapshot format; they carry no behaviour beyond small derived views.
package types

import (
	"fmt"
	"slices"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for every persisted timestamp.
// It matches JavaScript's Date.toISOString (UTC, millisecond precision).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// User is a static identity record from the user directory.
type User struct {
	ID        string `json:"id" yaml:"id"`
	Username  string `json:"username" yaml:"username"`
	AvatarURL string `json:"avatarUrl" yaml:"avatarUrl"`
}

// Comment is an append-only leaf attached to a post.
type Comment struct {
	ID        string `json:"id" yaml:"id"`
	PostID    string `json:"postId" yaml:"postId"`
	UserID    string `json:"userId" yaml:"userId"`
	Username  string `json:"username" yaml:"username"`
	AvatarURL string `json:"avatarUrl" yaml:"avatarUrl"`
	Text      string `json:"text" yaml:"text"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// Post is a single feed entry.
//
// Likes is a set of user ids kept as an ordered sequence; Comments is in
// insertion order, which is also display order.
type Post struct {
	ID        string    `json:"id" yaml:"id"`
	UserID    string    `json:"userId" yaml:"userId"`
	Username  string    `json:"username" yaml:"username"`
	AvatarURL string    `json:"avatarUrl" yaml:"avatarUrl"`
	ImageURL  string    `json:"imageUrl" yaml:"imageUrl"`
	Caption   string    `json:"caption" yaml:"caption"`
	Likes     []string  `json:"likes" yaml:"likes"`
	Comments  []Comment `json:"comments" yaml:"comments"`
	CreatedAt string    `json:"createdAt" yaml:"createdAt"`
}

// FeedState is the root aggregate. Only Posts is persisted; CurrentUserID is
// contextual to the running session.
type FeedState struct {
	Posts         []Post `json:"posts"`
	CurrentUserID string `json:"currentUserId"`
}

// LikedBy reports whether userID is in the post's like set.
func (p Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// LikeCount returns the number of distinct likes.
func (p Post) LikeCount() int {
	return len(p.Likes)
}

// CommentCount returns the number of comments.
func (p Post) CommentCount() int {
	return len(p.Comments)
}

// LastComment returns the most recent comment, if any.
func (p Post) LastComment() (Comment, bool) {
	if len(p.Comments) == 0 {
		return Comment{}, false
	}
	return p.Comments[len(p.Comments)-1], true
}

// Clone returns a deep copy of the post. The copy shares no backing arrays
// with the receiver.
func (p Post) Clone() Post {
	c := p
	c.Likes = append(make([]string, 0, len(p.Likes)), p.Likes...)
	c.Comments = append(make([]Comment, 0, len(p.Comments)), p.Comments...)
	return c
}

// ClonePosts deep-copies a post collection.
func ClonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

// FindPost returns the index of the post with the given id, or -1.
func FindPost(posts []Post, id string) int {
	return slices.IndexFunc(posts, func(p Post) bool { return p.ID == id })
}

// FormatTimestamp renders t in the persisted ISO-8601 form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses any RFC 3339 timestamp, with or without fractional
// seconds.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
