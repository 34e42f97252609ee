package app

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNewID(t *testing.T) {
	const n = 1000

	seen := make(map[string]bool, n)
	prev := ""
	for i := 0; i < n; i++ {
		id := newID(cardIDPrefix)
		if !strings.HasPrefix(id, cardIDPrefix) {
			t.Fatalf("id %q lacks prefix %q", id, cardIDPrefix)
		}
		if _, err := ulid.ParseStrict(strings.TrimPrefix(id, cardIDPrefix)); err != nil {
			t.Fatalf("id %q is not a ULID: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		if id <= prev {
			t.Fatalf("id %q does not sort after %q", id, prev)
		}
		seen[id] = true
		prev = id
	}
}
