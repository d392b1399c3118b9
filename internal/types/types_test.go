package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPostDerivedViews(t *testing.T) {
	p := Post{
		ID:    "p1",
		Likes: []string{"u1", "u2"},
		Comments: []Comment{
			{ID: "c1", Text: "first"},
			{ID: "c2", Text: "second"},
		},
	}

	if !p.LikedBy("u2") {
		t.Fatalf("expected u2 to have liked the post")
	}
	if p.LikedBy("u3") {
		t.Fatalf("did not expect u3 to have liked the post")
	}
	if p.LikeCount() != 2 || p.CommentCount() != 2 {
		t.Fatalf("unexpected counts: likes=%d comments=%d", p.LikeCount(), p.CommentCount())
	}
	last, ok := p.LastComment()
	if !ok || last.ID != "c2" {
		t.Fatalf("expected last comment c2, got %+v (ok=%v)", last, ok)
	}
	if _, ok := (Post{}).LastComment(); ok {
		t.Fatalf("expected no last comment on empty post")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	orig := []Post{{ID: "p1", Likes: make([]string, 1, 8), Comments: []Comment{{ID: "c1"}}}}
	orig[0].Likes[0] = "u1"

	cp := ClonePosts(orig)
	cp[0].Likes[0] = "changed"
	cp[0].Comments[0].Text = "changed"
	cp[0].Likes = append(cp[0].Likes, "u9")

	if orig[0].Likes[0] != "u1" {
		t.Fatalf("clone aliased likes")
	}
	if orig[0].Comments[0].Text != "" {
		t.Fatalf("clone aliased comments")
	}
	if got := orig[0].Likes[:2][1]; got == "u9" {
		t.Fatalf("append on clone wrote into original backing array")
	}
}

func TestFindPost(t *testing.T) {
	posts := []Post{{ID: "a"}, {ID: "b"}}
	if FindPost(posts, "b") != 1 {
		t.Fatalf("expected index 1")
	}
	if FindPost(posts, "zzz") != -1 {
		t.Fatalf("expected -1 for unknown id")
	}
}

func TestTimestampFormatMatchesISOString(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.FixedZone("CET", 3600))
	got := FormatTimestamp(ts)
	if got != "2024-03-09T13:05:07.123Z" {
		t.Fatalf("unexpected timestamp: %s", got)
	}

	parsed, err := ParseTimestamp(got)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !parsed.Equal(ts.Truncate(time.Millisecond)) {
		t.Fatalf("round trip mismatch: %v vs %v", parsed, ts)
	}

	if _, err := ParseTimestamp("2024-03-09T13:05:07Z"); err != nil {
		t.Fatalf("expected second precision timestamp to parse: %v", err)
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("expected error for invalid timestamp")
	}
}

func TestPostJSONFieldNames(t *testing.T) {
	p := Post{ID: "p1", AvatarURL: "a", ImageURL: "i", Likes: []string{}, Comments: []Comment{}}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"id", "userId", "username", "avatarUrl", "imageUrl", "caption", "likes", "comments", "createdAt"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing JSON field %q in %s", key, data)
		}
	}
}
