package config

// Comment id schemes.
const (
	CommentIDsUUID      = "uuid"
	CommentIDsTimestamp = "timestamp"
)

// FeedConfig configures the feed store.
type FeedConfig struct {
	// CurrentUserID overrides the seed's session user. Empty = seed default.
	CurrentUserID string `yaml:"current_user_id,omitempty"`

	// SeedPath points at an alternative YAML seed. Empty = built-in seed.
	SeedPath string `yaml:"seed_path,omitempty"`

	// CommentIDs selects how new comment ids are generated.
	CommentIDs string `yaml:"comment_ids"`
}
