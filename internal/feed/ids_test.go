package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUUIDGenerator(t *testing.T) {
	g := UUIDGenerator{}
	a, b := g.NewID(), g.NewID()
	assert.True(t, strings.HasPrefix(a, "c-"))
	assert.Len(t, a, len("c-")+36)
	assert.NotEqual(t, a, b)
}

func TestTimestampGenerator_Monotonic(t *testing.T) {
	frozen := time.UnixMilli(1717171717171)
	g := &TimestampGenerator{Now: func() time.Time { return frozen }}

	assert.Equal(t, "c1717171717171", g.NewID())
	assert.Equal(t, "c1717171717172", g.NewID())
	assert.Equal(t, "c1717171717173", g.NewID())
}

func TestCounterGenerator(t *testing.T) {
	g := NewCounter("c", 7)
	assert.Equal(t, "c7", g.NewID())
	assert.Equal(t, "c8", g.NewID())
}

func TestGeneratorFor(t *testing.T) {
	assert.IsType(t, &TimestampGenerator{}, GeneratorFor("timestamp"))
	assert.IsType(t, UUIDGenerator{}, GeneratorFor("uuid"))
	assert.IsType(t, UUIDGenerator{}, GeneratorFor(""))
}
