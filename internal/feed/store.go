// Package feed owns the post collection: the pure like/comment reducer and
// the Store that drives it and persists every change.
//
// Reduce computes the next snapshot and a PersistIntent; Store executes the
// intent against a store.Backend. Load and write failures are logged, never
// returned.
package feed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"sociogram/internal/logging"
	"sociogram/internal/store"
	"sociogram/internal/types"

	"go.uber.org/zap"
)

// PostsKey is the storage key holding the serialized post collection.
const PostsKey = "ugc_feed_posts"

// Config configures a Store. Zero values fall back to sensible defaults.
type Config struct {
	CurrentUserID string
	Seed          []types.Post
	Key           string
	IDs           IDGenerator
	Now           func() time.Time
	Logger        *zap.Logger
}

// Store is the single source of truth for the post collection.
type Store struct {
	backend store.Backend
	key     string
	userID  string
	ids     IDGenerator
	now     func() time.Time
	logger  *zap.Logger

	mu    sync.Mutex
	posts []types.Post

	persistFailures atomic.Int64
}

// NewStore loads the persisted snapshot, or the seed when there is none or
// it cannot be read.
func NewStore(ctx context.Context, backend store.Backend, cfg Config) *Store {
	s := &Store{
		backend: backend,
		key:     cfg.Key,
		userID:  cfg.CurrentUserID,
		ids:     cfg.IDs,
		now:     cfg.Now,
		logger:  cfg.Logger,
	}
	if s.key == "" {
		s.key = PostsKey
	}
	if s.ids == nil {
		s.ids = UUIDGenerator{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	s.posts = s.load(ctx, cfg.Seed)
	return s
}

func (s *Store) load(ctx context.Context, seedPosts []types.Post) []types.Post {
	fallback := func() []types.Post {
		return normalize(types.ClonePosts(seedPosts))
	}

	if s.backend == nil {
		return fallback()
	}
	defer logging.StartTimer(s.logger, "LoadSnapshot").Stop()

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug("No persisted snapshot, using seed", zap.String("key", s.key))
		} else {
			s.logger.Warn("Failed to read snapshot, using seed", zap.String("key", s.key), zap.Error(err))
		}
		return fallback()
	}

	posts, err := DecodePosts(raw)
	if err != nil {
		s.logger.Warn("Failed to parse snapshot, using seed", zap.String("key", s.key), zap.Error(err))
		return fallback()
	}

	s.logger.Debug("Loaded snapshot", zap.Int("posts", len(posts)))
	return posts
}

// Posts returns the current snapshot. Callers must not mutate it.
func (s *Store) Posts() []types.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

// Snapshot returns the current state with the session user.
func (s *Store) Snapshot() types.FeedState {
	return types.FeedState{Posts: s.Posts(), CurrentUserID: s.userID}
}

// Post returns the post with the given id.
func (s *Store) Post(id string) (types.Post, bool) {
	posts := s.Posts()
	idx := types.FindPost(posts, id)
	if idx < 0 {
		return types.Post{}, false
	}
	return posts[idx], true
}

// CurrentUserID returns the session user.
func (s *Store) CurrentUserID() string {
	return s.userID
}

// PersistFailures returns how many writes have failed since construction.
func (s *Store) PersistFailures() int64 {
	return s.persistFailures.Load()
}

// ToggleLike flips the session user's like on postID.
func (s *Store) ToggleLike(ctx context.Context, postID string) []types.Post {
	return s.Dispatch(ctx, ToggleLikeAction{PostID: postID})
}

// ToggleLikeAs flips userID's like on postID.
func (s *Store) ToggleLikeAs(ctx context.Context, postID, userID string) []types.Post {
	return s.Dispatch(ctx, ToggleLikeAction{PostID: postID, UserID: userID})
}

// AddComment appends a comment by the session user to postID. Unknown posts
// and blank text are ignored.
func (s *Store) AddComment(ctx context.Context, postID, text, username, avatarURL string) []types.Post {
	return s.Dispatch(ctx, AddCommentAction{
		PostID:    postID,
		Text:      text,
		Username:  username,
		AvatarURL: avatarURL,
	})
}

// Dispatch applies an action, persists the result if anything changed, and
// returns the new snapshot. A failed write is logged and counted; the new
// snapshot stands either way.
func (s *Store) Dispatch(ctx context.Context, action Action) []types.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, intent := Reduce(s.posts, action, Env{UserID: s.userID, IDs: s.ids, Now: s.now})
	if intent == nil {
		s.logger.Debug("Action was a no-op", zap.String("action", actionName(action)))
		return s.posts
	}

	s.posts = next
	s.persist(ctx, intent)
	return s.posts
}

func (s *Store) persist(ctx context.Context, intent *PersistIntent) {
	if s.backend == nil {
		return
	}

	raw, err := EncodePosts(intent.Posts)
	if err == nil {
		err = s.backend.Set(ctx, s.key, raw)
	}
	if err != nil {
		s.persistFailures.Add(1)
		s.logger.Error("Failed to persist snapshot", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.logger.Debug("Persisted snapshot", zap.Int("bytes", len(raw)))
}

func actionName(a Action) string {
	switch a.(type) {
	case ToggleLikeAction:
		return "toggle_like"
	case AddCommentAction:
		return "add_comment"
	default:
		return "unknown"
	}
}
