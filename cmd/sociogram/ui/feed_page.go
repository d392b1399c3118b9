package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sociogram/internal/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// EmptyFeedMessage is shown when there are no posts.
const EmptyFeedMessage = "No posts yet. Be the first to share!"

// Feed is the slice of the feed store the page drives.
type Feed interface {
	Posts() []types.Post
	CurrentUserID() string
	ToggleLike(ctx context.Context, postID string) []types.Post
	AddComment(ctx context.Context, postID, text, username, avatarURL string) []types.Post
}

// DarkModeToggler is the slice of the preference store the page drives.
type DarkModeToggler interface {
	Toggle(ctx context.Context) bool
	Enabled() bool
}

// FeedOptions configures a FeedModel.
type FeedOptions struct {
	Users         map[string]types.User
	Theme         *ThemeDisplay
	Captions      *CaptionRenderer // nil renders captions as plain text
	LatchDuration time.Duration
	MaxWidth      int // 0 = terminal width
	Now           func() time.Time
	Logger        *zap.Logger
}

// FeedModel is the interactive feed page.
type FeedModel struct {
	ctx      context.Context
	feed     Feed
	prefs    DarkModeToggler
	users    map[string]types.User
	theme    *ThemeDisplay
	captions *CaptionRenderer
	latch    *Latch
	now      func() time.Time
	logger   *zap.Logger

	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	input    textinput.Model

	posts     []types.Post
	cursor    int
	expanded  map[string]bool
	composing bool
	offsets   []int
	width     int
	height    int
	maxWidth  int
}

// NewFeedModel creates the feed page.
func NewFeedModel(ctx context.Context, feed Feed, prefs DarkModeToggler, opts FeedOptions) FeedModel {
	ti := textinput.New()
	ti.Placeholder = "Add a comment..."
	ti.CharLimit = 500
	ti.Prompt = "› "

	m := FeedModel{
		ctx:      ctx,
		feed:     feed,
		prefs:    prefs,
		users:    opts.Users,
		theme:    opts.Theme,
		captions: opts.Captions,
		latch:    NewLatch(opts.LatchDuration),
		now:      opts.Now,
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		input:    ti,
		posts:    feed.Posts(),
		expanded: make(map[string]bool),
		width:    80,
		height:   24,
		maxWidth: opts.MaxWidth,
	}
	if m.theme == nil {
		m.theme = NewThemeDisplay()
		m.theme.ApplyDarkMode(prefs != nil && prefs.Enabled())
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m FeedModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case LatchReleasedMsg:
		m.latch.Release(msg)

	case tea.KeyMsg:
		if m.composing {
			cmd = m.updateComposing(msg)
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Like):
			cmd = m.like()
		case key.Matches(msg, m.keys.Comment):
			cmd = m.startComment()
		case key.Matches(msg, m.keys.Expand):
			if p, ok := m.selected(); ok {
				m.expanded[p.ID] = !m.expanded[p.ID]
			}
		case key.Matches(msg, m.keys.DarkMode):
			if m.prefs != nil {
				dark := m.prefs.Toggle(m.ctx)
				m.logger.Debug("Toggled dark mode", zap.Bool("dark", dark))
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	default:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, cmd
}

func (m *FeedModel) updateComposing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.composing = false
		m.input.Blur()
		m.input.Reset()
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitComment()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *FeedModel) selected() (types.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return types.Post{}, false
	}
	return m.posts[m.cursor], true
}

func (m *FeedModel) moveCursor(delta int) {
	if len(m.posts) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.posts)-1)
}

func (m *FeedModel) like() tea.Cmd {
	p, ok := m.selected()
	if !ok {
		return nil
	}
	cmd := m.latch.Engage(likeLatch(p.ID))
	if cmd == nil {
		return nil
	}
	m.posts = m.feed.ToggleLike(m.ctx, p.ID)
	return cmd
}

func (m *FeedModel) startComment() tea.Cmd {
	p, ok := m.selected()
	if !ok {
		return nil
	}
	m.expanded[p.ID] = true
	m.composing = true
	return m.input.Focus()
}

func (m *FeedModel) submitComment() tea.Cmd {
	p, ok := m.selected()
	text := strings.TrimSpace(m.input.Value())
	if !ok || text == "" {
		return nil
	}
	cmd := m.latch.Engage(commentLatch(p.ID))
	if cmd == nil {
		return nil
	}

	user := m.currentUser()
	m.posts = m.feed.AddComment(m.ctx, p.ID, text, user.Username, user.AvatarURL)
	m.input.Reset()
	return cmd
}

func (m *FeedModel) currentUser() types.User {
	id := m.feed.CurrentUserID()
	if u, ok := m.users[id]; ok {
		return u
	}
	return types.User{ID: id, Username: id}
}

func likeLatch(postID string) string    { return "like:" + postID }
func commentLatch(postID string) string { return "comment:" + postID }

// refresh re-lays out the page and re-renders the posts into the viewport.
func (m *FeedModel) refresh() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-lipgloss.Height(m.headerView())-lipgloss.Height(m.footerView()), 1)

	content, offsets := m.renderPosts()
	m.offsets = offsets
	m.viewport.SetContent(content)

	if m.cursor < len(offsets) {
		start := offsets[m.cursor]
		if start < m.viewport.YOffset || start >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(start)
		}
	}
}

func (m *FeedModel) cardWidth() int {
	w := m.width
	if m.maxWidth > 0 && m.maxWidth < w {
		w = m.maxWidth
	}
	// border + padding
	return max(w-4, 10)
}

func (m *FeedModel) renderPosts() (string, []int) {
	styles := m.theme.Styles()
	if len(m.posts) == 0 {
		return styles.Empty.Width(m.cardWidth()).Render(EmptyFeedMessage), nil
	}

	var sb strings.Builder
	offsets := make([]int, len(m.posts))
	line := 0
	for i, p := range m.posts {
		offsets[i] = line
		card := m.renderPost(p, i == m.cursor, styles)
		sb.WriteString(card)
		sb.WriteString("\n")
		line += lipgloss.Height(card)
	}
	return sb.String(), offsets
}

func (m *FeedModel) renderPost(p types.Post, selected bool, styles Styles) string {
	var sb strings.Builder
	now := m.now()
	userID := m.feed.CurrentUserID()

	sb.WriteString(styles.Author.Render(p.Username))
	if ago := TimeAgo(p.CreatedAt, now); ago != "" {
		sb.WriteString(styles.Muted.Render(" · " + ago))
	}
	sb.WriteString("\n")

	if p.ImageURL != "" {
		sb.WriteString(styles.Image.Render("▣ " + p.ImageURL))
		sb.WriteString("\n")
	}

	heart, likeStyle := "♡", styles.LikeIdle
	if p.LikedBy(userID) {
		heart, likeStyle = "♥", styles.LikeOn
	}
	if m.latch.Held(likeLatch(p.ID)) {
		likeStyle = styles.Latched
	}
	sb.WriteString(likeStyle.Render(fmt.Sprintf("%s %d", heart, p.LikeCount())))
	sb.WriteString("   ")
	sb.WriteString(styles.Count.Render(fmt.Sprintf("💬 %d", p.CommentCount())))
	sb.WriteString("\n")

	if p.Caption != "" {
		sb.WriteString(m.renderCaption(p, styles))
		sb.WriteString("\n")
	}

	n := p.CommentCount()
	switch {
	case n > 0 && !m.expanded[p.ID]:
		plural := "s"
		if n == 1 {
			plural = ""
		}
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("View all %d comment%s", n, plural)))
		sb.WriteString("\n")
	case m.expanded[p.ID]:
		for _, c := range p.Comments {
			sb.WriteString(styles.CommentAuthor.Render(c.Username))
			sb.WriteString(" ")
			sb.WriteString(styles.CommentText.Render(c.Text))
			if ago := TimeAgo(c.CreatedAt, now); ago != "" {
				sb.WriteString(styles.Muted.Render("  " + ago))
			}
			sb.WriteString("\n")
		}
	}

	style := styles.Card
	if selected {
		style = styles.SelectedCard
	}
	return style.Width(m.cardWidth()).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *FeedModel) renderCaption(p types.Post, styles Styles) string {
	if m.captions == nil {
		return styles.Author.Render(p.Username) + " " + styles.Caption.Render(p.Caption)
	}
	return styles.Author.Render(p.Username) + "\n" + m.captions.Render(p.Caption, styles.Theme.IsDark, m.cardWidth()-2)
}

func (m *FeedModel) headerView() string {
	styles := m.theme.Styles()
	user := m.currentUser()

	icon := "☾"
	if styles.Theme.IsDark {
		icon = "☀"
	}
	left := styles.Title.Render("Sociogram Feed")
	right := styles.Muted.Render(icon + "  " + user.Username)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Header.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *FeedModel) footerView() string {
	styles := m.theme.Styles()
	var sb strings.Builder
	if m.composing {
		input := m.input.View()
		if p, ok := m.selected(); ok && m.latch.Held(commentLatch(p.ID)) {
			input = styles.Latched.Render(input)
		}
		sb.WriteString(input)
		sb.WriteString("\n")
		sb.WriteString(styles.Footer.Render(m.help.ShortHelpView([]key.Binding{m.keys.Submit, m.keys.Cancel})))
		return sb.String()
	}
	sb.WriteString(styles.Footer.Render(m.help.View(m.keys)))
	return sb.String()
}

// View implements tea.Model.
func (m FeedModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View(), m.footerView())
}
