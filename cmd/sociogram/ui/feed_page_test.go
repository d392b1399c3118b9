package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"sociogram/internal/feed"
	"sociogram/internal/seed"
	"sociogram/internal/store"
	"sociogram/internal/types"
	"sociogram/internal/ux"

	tea "github.com/charmbracelet/bubbletea"
)

type pageFixture struct {
	model   FeedModel
	feed    *feed.Store
	prefs   *ux.Preferences
	backend *store.MemoryStore
}

func newPageFixture(t *testing.T, posts []types.Post) *pageFixture {
	t.Helper()
	ctx := context.Background()
	backend := store.NewMemoryStore(0)
	theme := NewThemeDisplay()

	fs := feed.NewStore(ctx, backend, feed.Config{
		CurrentUserID: seed.CurrentUserID,
		Seed:          posts,
		IDs:           feed.NewCounter("c-ui-", 1),
	})
	prefs := ux.NewPreferences(ctx, backend, ux.PreferencesOptions{Display: theme})

	m := NewFeedModel(ctx, fs, prefs, FeedOptions{
		Users: seed.Users(),
		Theme: theme,
		Now:   func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) },
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
	return &pageFixture{model: m, feed: fs, prefs: prefs, backend: backend}
}

func update(t *testing.T, m FeedModel, msg tea.Msg) FeedModel {
	t.Helper()
	next, _ := m.Update(msg)
	fm, ok := next.(FeedModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return fm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// releaseAll runs a latch command and feeds the release back into the model.
func releaseAll(t *testing.T, m FeedModel, cmd tea.Cmd) FeedModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	if msg, ok := cmd().(LatchReleasedMsg); ok {
		return update(t, m, msg)
	}
	return m
}

func TestFeedPage_EmptyFeed(t *testing.T) {
	f := newPageFixture(t, []types.Post{})
	if !strings.Contains(f.model.View(), EmptyFeedMessage) {
		t.Errorf("expected empty feed message in view")
	}

	// Keys on an empty feed are harmless.
	m := update(t, f.model, runes("l"))
	m = update(t, m, runes("c"))
	if m.composing {
		t.Errorf("should not compose without a post")
	}
}

func TestFeedPage_RendersSeed(t *testing.T) {
	f := newPageFixture(t, seed.Posts())
	view := f.model.View()

	for _, want := range []string{"Sociogram Feed", "alice", "carol", "View all 2 comments", "View all 1 comment"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
	if strings.Contains(view, "View all 1 comments") {
		t.Errorf("singular comment count should not be pluralized")
	}
}

func TestFeedPage_LikeTogglesThroughStore(t *testing.T) {
	f := newPageFixture(t, seed.Posts())

	next, cmd := f.model.Update(runes("l"))
	m := next.(FeedModel)
	if cmd == nil {
		t.Fatal("expected latch release command")
	}
	p, _ := f.feed.Post("p1")
	if !p.LikedBy(seed.CurrentUserID) {
		t.Fatalf("expected p1 liked")
	}

	// Latched: a second press before release is ignored.
	m = update(t, m, runes("l"))
	p, _ = f.feed.Post("p1")
	if !p.LikedBy(seed.CurrentUserID) {
		t.Fatalf("second press during latch must be ignored")
	}

	m.latch.Release(LatchReleasedMsg{Key: likeLatch("p1"), seq: 1})
	m = update(t, m, runes("l"))
	p, _ = f.feed.Post("p1")
	if p.LikedBy(seed.CurrentUserID) {
		t.Fatalf("expected p1 unliked after latch release")
	}
	if f.backend.Writes() != 2 {
		t.Errorf("expected 2 writes, got %d", f.backend.Writes())
	}
}

func TestFeedPage_CursorNavigation(t *testing.T) {
	f := newPageFixture(t, seed.Posts())
	m := f.model

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, runes("j"))
	m = update(t, m, runes("j"))
	if m.cursor != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", m.cursor)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}

	m = update(t, m, runes("l"))
	p, _ := f.feed.Post("p2")
	if !p.LikedBy(seed.CurrentUserID) {
		t.Errorf("expected like to target selected post p2")
	}
}

func TestFeedPage_CommentFlow(t *testing.T) {
	f := newPageFixture(t, seed.Posts())
	m := update(t, f.model, runes("c"))
	if !m.composing {
		t.Fatal("expected compose mode")
	}

	// Blank submissions are ignored.
	m = update(t, m, runes("   "))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if p, _ := f.feed.Post("p1"); p.CommentCount() != 0 {
		t.Fatalf("blank comment should not be added")
	}

	m = update(t, m, runes(" hello "))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(FeedModel)

	p, _ := f.feed.Post("p1")
	if p.CommentCount() != 1 {
		t.Fatalf("expected 1 comment, got %d", p.CommentCount())
	}
	c := p.Comments[0]
	if c.Text != "hello" || c.Username != "alice" || c.UserID != seed.CurrentUserID {
		t.Errorf("unexpected comment %+v", c)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared after submit")
	}
	if !strings.Contains(m.View(), "hello") {
		t.Errorf("expected new comment rendered")
	}

	// Latched until the release arrives.
	m = update(t, m, runes("again"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if p, _ := f.feed.Post("p1"); p.CommentCount() != 1 {
		t.Fatalf("submit during latch must be ignored")
	}
	if cmd == nil {
		t.Fatal("expected latch command")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.composing {
		t.Errorf("esc should leave compose mode")
	}
}

func TestFeedPage_ExpandComments(t *testing.T) {
	f := newPageFixture(t, seed.Posts())
	m := update(t, f.model, runes("j"))
	m = update(t, m, runes("v"))

	view := m.View()
	if !strings.Contains(view, "Looks great to me!") {
		t.Errorf("expected expanded comment text")
	}

	m = update(t, m, runes("v"))
	if strings.Contains(m.View(), "Looks great to me!") {
		t.Errorf("expected comments collapsed again")
	}
}

func TestFeedPage_DarkModeToggle(t *testing.T) {
	f := newPageFixture(t, seed.Posts())
	start := f.prefs.Enabled()

	m := update(t, f.model, runes("d"))
	if f.prefs.Enabled() == start {
		t.Fatalf("expected preference flipped")
	}
	if m.theme.IsDark() != f.prefs.Enabled() {
		t.Errorf("display should follow preference")
	}
	raw, ok := f.backend.Raw(ux.DarkModeKey)
	if !ok || raw != "true" && raw != "false" {
		t.Errorf("expected persisted boolean, got %q", raw)
	}
}

func TestFeedPage_Quit(t *testing.T) {
	f := newPageFixture(t, seed.Posts())
	_, cmd := f.model.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}

func TestFeedPage_LatchReleaseWithZeroDuration(t *testing.T) {
	f := newPageFixture(t, seed.Posts())
	next, cmd := f.model.Update(runes("l"))
	m := releaseAll(t, next.(FeedModel), cmd)

	m = update(t, m, runes("l"))
	p, _ := f.feed.Post("p1")
	if p.LikedBy(seed.CurrentUserID) {
		t.Errorf("expected second like to unlike after release")
	}
}
