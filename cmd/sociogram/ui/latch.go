package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Latch briefly disables a control after it fires, so a held key or a
// double press does not toggle a like twice. It is cosmetic; the feed store
// serializes mutations on its own.
type Latch struct {
	mu       sync.Mutex
	duration time.Duration
	held     map[string]uint64
	seq      uint64
}

// LatchReleasedMsg tells the model a latch has expired.
type LatchReleasedMsg struct {
	Key string
	seq uint64
}

// NewLatch creates a latch that holds for duration.
func NewLatch(duration time.Duration) *Latch {
	return &Latch{
		duration: duration,
		held:     make(map[string]uint64),
	}
}

// Engage closes the latch for key. It returns nil if key is already held;
// otherwise a command that reports the release.
func (l *Latch) Engage(key string) tea.Cmd {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil
	}
	l.seq++
	seq := l.seq
	l.held[key] = seq

	if l.duration <= 0 {
		return func() tea.Msg { return LatchReleasedMsg{Key: key, seq: seq} }
	}
	return tea.Tick(l.duration, func(time.Time) tea.Msg {
		return LatchReleasedMsg{Key: key, seq: seq}
	})
}

// Held reports whether key is latched.
func (l *Latch) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok
}

// Release opens the latch named by msg. Stale releases from an earlier
// engagement are ignored.
func (l *Latch) Release(msg LatchReleasedMsg) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[msg.Key] == msg.seq {
		delete(l.held, msg.Key)
	}
}

// Cancel opens every latch.
func (l *Latch) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.held)
}

// DefaultLatchDuration matches the submit latch of the web client.
const DefaultLatchDuration = 300 * time.Millisecond
