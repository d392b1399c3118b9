// Package seed holds the static user directory and the fallback post
// collection used when no persisted snapshot exists.
package seed

import (
	"errors"
	"fmt"
	"os"

	"sociogram/internal/types"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSeed is returned when a seed file fails validation.
var ErrInvalidSeed = errors.New("seed: invalid dataset")

// CurrentUserID is the session user when config does not name one.
const CurrentUserID = "u1"

var users = []types.User{
	{ID: "u1", Username: "alice", AvatarURL: "https://i.pravatar.cc/150?u=alice"},
	{ID: "u2", Username: "bob", AvatarURL: "https://i.pravatar.cc/150?u=bob"},
	{ID: "u3", Username: "carol", AvatarURL: "https://i.pravatar.cc/150?u=carol"},
}

var posts = []types.Post{
	{
		ID:        "p1",
		UserID:    "u2",
		Username:  "bob",
		AvatarURL: "https://i.pravatar.cc/150?u=bob",
		ImageURL:  "https://picsum.photos/seed/p1/600/600",
		Caption:   "Sunrise over the **harbour** this morning.",
		Likes:     []string{},
		Comments:  []types.Comment{},
		CreatedAt: "2024-03-08T06:42:00.000Z",
	},
	{
		ID:        "p2",
		UserID:    "u3",
		Username:  "carol",
		AvatarURL: "https://i.pravatar.cc/150?u=carol",
		ImageURL:  "https://picsum.photos/seed/p2/600/600",
		Caption:   "First attempt at sourdough. Crumb could be better.",
		Likes:     []string{"u2"},
		Comments: []types.Comment{
			{
				ID:        "c1",
				PostID:    "p2",
				UserID:    "u2",
				Username:  "bob",
				AvatarURL: "https://i.pravatar.cc/150?u=bob",
				Text:      "Looks great to me!",
				CreatedAt: "2024-03-07T19:10:00.000Z",
			},
		},
		CreatedAt: "2024-03-07T18:30:00.000Z",
	},
	{
		ID:        "p3",
		UserID:    "u1",
		Username:  "alice",
		AvatarURL: "https://i.pravatar.cc/150?u=alice",
		ImageURL:  "https://picsum.photos/seed/p3/600/600",
		Caption:   "Trail run done. _12 km_ and only one wrong turn.",
		Likes:     []string{"u2", "u3"},
		Comments: []types.Comment{
			{
				ID:        "c2",
				PostID:    "p3",
				UserID:    "u3",
				Username:  "carol",
				AvatarURL: "https://i.pravatar.cc/150?u=carol",
				Text:      "Which trail?",
				CreatedAt: "2024-03-06T10:05:00.000Z",
			},
			{
				ID:        "c3",
				PostID:    "p3",
				UserID:    "u1",
				Username:  "alice",
				AvatarURL: "https://i.pravatar.cc/150?u=alice",
				Text:      "The ridge loop behind the reservoir.",
				CreatedAt: "2024-03-06T10:12:00.000Z",
			},
		},
		CreatedAt: "2024-03-06T09:00:00.000Z",
	},
}

// Users returns the user directory keyed by id.
func Users() map[string]types.User {
	out := make(map[string]types.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out
}

// Posts returns a fresh deep copy of the built-in post collection.
func Posts() []types.Post {
	return types.ClonePosts(posts)
}

// Dataset is the on-disk shape of an alternative seed.
type Dataset struct {
	Users []types.User `yaml:"users"`
	Posts []types.Post `yaml:"posts"`
}

// Directory returns the dataset's users keyed by id.
func (d *Dataset) Directory() map[string]types.User {
	out := make(map[string]types.User, len(d.Users))
	for _, u := range d.Users {
		out[u.ID] = u
	}
	return out
}

// LoadFile reads and validates a YAML seed.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	for i := range ds.Posts {
		if ds.Posts[i].Likes == nil {
			ds.Posts[i].Likes = []string{}
		}
		if ds.Posts[i].Comments == nil {
			ds.Posts[i].Comments = []types.Comment{}
		}
	}
	return &ds, nil
}

// Validate checks id uniqueness and timestamp syntax.
func (d *Dataset) Validate() error {
	seen := make(map[string]bool, len(d.Posts))
	for _, p := range d.Posts {
		if p.ID == "" {
			return fmt.Errorf("%w: post with empty id", ErrInvalidSeed)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate post id %q", ErrInvalidSeed, p.ID)
		}
		seen[p.ID] = true

		if _, err := types.ParseTimestamp(p.CreatedAt); err != nil {
			return fmt.Errorf("%w: post %s: %v", ErrInvalidSeed, p.ID, err)
		}
		for _, c := range p.Comments {
			if _, err := types.ParseTimestamp(c.CreatedAt); err != nil {
				return fmt.Errorf("%w: comment %s: %v", ErrInvalidSeed, c.ID, err)
			}
		}
	}
	for _, u := range d.Users {
		if u.ID == "" {
			return fmt.Errorf("%w: user with empty id", ErrInvalidSeed)
		}
	}
	return nil
}
