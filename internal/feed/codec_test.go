package feed

import (
	"errors"
	"strings"
	"testing"

	"sociogram/internal/seed"
	"sociogram/internal/types"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	for name, posts := range map[string][]types.Post{
		"fixture": fixturePosts(),
		"seed":    seed.Posts(),
		"empty":   {},
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := EncodePosts(posts)
			require.NoError(t, err)

			got, err := DecodePosts(raw)
			require.NoError(t, err)
			if diff := cmp.Diff(posts, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodePosts_NilSlicesAsArrays(t *testing.T) {
	raw, err := EncodePosts([]types.Post{{ID: "p1"}})
	require.NoError(t, err)
	assert.Contains(t, raw, `"likes":[]`)
	assert.Contains(t, raw, `"comments":[]`)
	assert.True(t, strings.HasPrefix(raw, "["))
}

func TestDecodePosts_AcceptsOriginalClientFormat(t *testing.T) {
	raw := `[{"id":"p1","userId":"u2","username":"bob","avatarUrl":"a","imageUrl":"i","caption":"c",` +
		`"likes":["u1"],"comments":[{"id":"c1717171717171","postId":"p1","userId":"u1","username":"alice",` +
		`"avatarUrl":"a","text":"hi","createdAt":"2024-06-01T10:00:00.123Z"}],"createdAt":"2024-06-01T09:00:00.000Z"}]`

	posts, err := DecodePosts(raw)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "c1717171717171", posts[0].Comments[0].ID)
	assert.True(t, posts[0].LikedBy("u1"))
}

func TestDecodePosts_Normalizes(t *testing.T) {
	posts, err := DecodePosts(`[{"id":"p1","likes":["u1","u2","u1"]},{"id":"p2","likes":null}]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, posts[0].Likes)
	assert.Equal(t, []string{}, posts[1].Likes)
	assert.Equal(t, []types.Comment{}, posts[1].Comments)
}

func TestDecodePosts_ParseErrors(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":        "",
		"whitespace":   "  ",
		"null":         "null",
		"truncated":    `[{"id":"p1"`,
		"object":       `{"posts":[]}`,
		"empty id":     `[{"id":""}]`,
		"duplicate id": `[{"id":"p1"},{"id":"p1"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePosts(raw)
			assert.True(t, errors.Is(err, ErrParse), "got %v", err)
		})
	}
}
