// Shared hydration helpers for the table accessors.
package sqlite

import (
	"fmt"
	"time"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

// timeLayout is the timestamp format stored in TEXT columns. Nanosecond
// precision keeps import round-trips lossless.
const timeLayout = time.RFC3339Nano

// rowScanner is satisfied by both *sql.Row and *sql.Rows so hydration
// functions can serve Get and Fetch alike.
type rowScanner interface {
	Scan(dest ...any) error
}

// guard acquires the backend read lock for a table operation and verifies
// the backend is still attached. Table handles outlive Detach, so every
// operation must check instead of dereferencing a closed connection. The
// caller must defer release when err is nil.
func (b *Backend) guard() (release func(), err error) {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return nil, types.ErrStoreDetached
	}
	return b.mu.RUnlock, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}
