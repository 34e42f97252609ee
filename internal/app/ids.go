package app

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ID prefixes.
const (
	boardIDPrefix  = "board_"
	columnIDPrefix = "col_"
	cardIDPrefix   = "ann_"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// newID returns a prefixed ULID such as "ann_01J2...". ulid.Make draws from a
// process-wide monotonic source, so ids made in the same millisecond still
// sort in creation order.
func newID(prefix string) string {
	return prefix + ulid.Make().String()
}
