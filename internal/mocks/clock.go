package mocks

import (
	"fmt"
	"sync"
	"time"
)

// FixedClock is a controllable clock for tests
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// SequentialIDs yields predictable ids and codes: prefix-1, prefix-2, ... and
// PREFIX-1001, PREFIX-1002, ...
type SequentialIDs struct {
	mu    sync.Mutex
	ids   map[string]int
	codes int
	// Codes, when set, is consumed first by NewCode to force collisions.
	Codes []string
}

func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{ids: make(map[string]int), codes: 1000}
}

func (g *SequentialIDs) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ids[prefix]++
	return fmt.Sprintf("%s-%d", prefix, g.ids[prefix])
}

// Skip advances prefix so the next id is prefix-(n+1).
func (g *SequentialIDs) Skip(prefix string, n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ids[prefix] < n {
		g.ids[prefix] = n
	}
}

func (g *SequentialIDs) NewCode(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Codes) > 0 {
		c := g.Codes[0]
		g.Codes = g.Codes[1:]
		return c
	}
	g.codes++
	return fmt.Sprintf("%s-%d", prefix, g.codes)
}
