package idgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode_Format(t *testing.T) {
	re := regexp.MustCompile(`^MABE-[1-9][0-9]{3}$`)
	g := New()
	for i := 0; i < 500; i++ {
		assert.Regexp(t, re, g.NewCode("MABE"))
	}
}

func TestNewID(t *testing.T) {
	g := New()

	assert.Regexp(t, `^r-[0-9a-f]{32}$`, g.NewID("r"))
	assert.Len(t, g.NewID(""), 36)
	assert.NotEqual(t, g.NewID("s"), g.NewID("s"))
}

func TestNewID_NoCollisions(t *testing.T) {
	g := New()
	seen := make(map[string]struct{}, 100000)

	for i := 0; i < 100000; i++ {
		id := g.NewID("v")
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s after %d draws", id, i)
		seen[id] = struct{}{}
	}
}
