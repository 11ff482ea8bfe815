package rank

import (
	"testing"

	"github.com/lucasew/fdb/internal/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(items []item.Item) []string {
	out := make([]string, len(items))
	for n, it := range items {
		out[n] = it.Path
	}
	return out
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"atime", "frecency", "hits"}, Names())

	for _, name := range Names() {
		s, err := Get(name)
		require.NoError(t, err)
		assert.NotNil(t, s)
	}

	_, err := Get("alphabetical")
	assert.Error(t, err)
}

func TestHits(t *testing.T) {
	s, err := Get(Hits)
	require.NoError(t, err)

	items := []item.Item{
		{Path: "/five", Hits: 5},
		{Path: "/one", Hits: 1},
		{Path: "/three", Hits: 3},
	}
	s.Sort(items, 0)
	assert.Equal(t, []string{"/five", "/three", "/one"}, paths(items))

	t.Run("Stable On Ties", func(t *testing.T) {
		items := []item.Item{
			{Path: "/x", Hits: 2},
			{Path: "/y", Hits: 7},
			{Path: "/z", Hits: 2},
			{Path: "/w", Hits: 2},
		}
		s.Sort(items, 0)
		assert.Equal(t, []string{"/y", "/x", "/z", "/w"}, paths(items))
	})
}

func TestAtime(t *testing.T) {
	s, err := Get(Atime)
	require.NoError(t, err)

	items := []item.Item{
		{Path: "/old", Atime: 10, Hits: 50},
		{Path: "/new", Atime: 30, Hits: 1},
		{Path: "/mid", Atime: 20, Hits: 1},
		{Path: "/mid2", Atime: 20, Hits: 9},
	}
	s.Sort(items, 100)
	assert.Equal(t, []string{"/new", "/mid", "/mid2", "/old"}, paths(items))
}

func TestFrecency(t *testing.T) {
	const now = 1_000_000

	s, err := Get(Frecency)
	require.NoError(t, err)

	items := []item.Item{
		{Path: "/stale-popular", Atime: now - 10_000_000, Hits: 20},
		{Path: "/fresh", Atime: now, Hits: 1},
		{Path: "/recent-popular", Atime: now - 10, Hits: 5},
	}
	s.Sort(items, now)
	assert.Equal(t, []string{"/recent-popular", "/fresh", "/stale-popular"}, paths(items))

	for n := 1; n < len(items); n++ {
		assert.GreaterOrEqual(t, items[n-1].Frecency(now), items[n].Frecency(now))
	}
}
