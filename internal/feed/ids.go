package feed

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces comment ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues "c-<uuid v4>" ids.
type UUIDGenerator struct{}

// NewID implements IDGenerator.
func (UUIDGenerator) NewID() string {
	return "c-" + uuid.NewString()
}

// TimestampGenerator issues "c<unix millis>" ids. Two calls inside the same
// millisecond still get distinct ids.
type TimestampGenerator struct {
	Now func() time.Time

	mu   sync.Mutex
	last int64
}

// NewID implements IDGenerator.
func (g *TimestampGenerator) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	ms := now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return "c" + strconv.FormatInt(ms, 10)
}

// CounterGenerator issues "<prefix><n>" ids in sequence.
type CounterGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewCounter returns a counter starting at start.
func NewCounter(prefix string, start int) *CounterGenerator {
	return &CounterGenerator{prefix: prefix, next: start}
}

// NewID implements IDGenerator.
func (g *CounterGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("%s%d", g.prefix, g.next)
	g.next++
	return id
}

// GeneratorFor maps a config scheme name to a generator. Unknown names get
// UUIDs.
func GeneratorFor(scheme string) IDGenerator {
	switch scheme {
	case "timestamp":
		return &TimestampGenerator{}
	default:
		return UUIDGenerator{}
	}
}
