package idgen

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator issues uuid-based entity ids and four digit kiosk codes.
type Generator struct{}

func New() *Generator { return &Generator{} }

// NewID returns prefix-<32 hex of a uuid v4>, or the dashed uuid when prefix
// is empty.
func (Generator) NewID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "-" + strings.ReplaceAll(id, "-", "")
}

// NewCode returns PREFIX-NNNN with NNNN in [1000, 9999]. Uniqueness is the
// caller's concern.
func (Generator) NewCode(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, 1000+rand.IntN(9000))
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
