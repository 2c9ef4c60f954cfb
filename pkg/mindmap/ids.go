package mindmap

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID builds a fresh identifier from a monotonic millisecond timestamp
// and a random suffix. The timestamp keeps ids roughly sortable by
// creation time; the suffix prevents collisions for ids minted within the
// same millisecond (rapid paste or template expansion).
func newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
