package identity

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDUniqueAndOrdered(t *testing.T) {
	p := NewULID()

	ids := make([]string, 0, 1000)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := p.ID()
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		ids = append(ids, id)
	}

	// Monotonic entropy keeps generation order and lexical order aligned.
	assert.True(t, sort.StringsAreSorted(ids))
}
