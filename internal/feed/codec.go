package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sociogram/internal/types"
)

// ErrParse is returned when a persisted snapshot cannot be decoded.
var ErrParse = errors.New("feed: unparseable snapshot")

// EncodePosts serializes the collection as a JSON array. Nil likes and
// comments are written as empty arrays.
func EncodePosts(posts []types.Post) (string, error) {
	data, err := json.Marshal(normalize(posts))
	if err != nil {
		return "", fmt.Errorf("failed to encode posts: %w", err)
	}
	return string(data), nil
}

// DecodePosts parses a persisted snapshot and normalizes it. JSON null, empty
// post ids and duplicate post ids are all parse errors.
func DecodePosts(raw string) ([]types.Post, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty value", ErrParse)
	}

	var posts []types.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if posts == nil {
		return nil, fmt.Errorf("%w: null snapshot", ErrParse)
	}

	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: post with empty id", ErrParse)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate post id %q", ErrParse, p.ID)
		}
		seen[p.ID] = true
	}
	return normalize(posts), nil
}

// normalize returns posts with empty (never nil) slices and likes
// deduplicated, keeping the first occurrence.
func normalize(posts []types.Post) []types.Post {
	out := make([]types.Post, len(posts))
	for i, p := range posts {
		likes := make([]string, 0, len(p.Likes))
		seen := make(map[string]bool, len(p.Likes))
		for _, id := range p.Likes {
			if seen[id] {
				continue
			}
			seen[id] = true
			likes = append(likes, id)
		}
		p.Likes = likes
		if p.Comments == nil {
			p.Comments = []types.Comment{}
		}
		out[i] = p
	}
	return out
}
