package eviction_test

import (
	"testing"

	"github.com/lucasew/fdb/internal/eviction"
	"github.com/lucasew/fdb/internal/eviction/policy"
	"github.com/lucasew/fdb/internal/eviction/policy/maxsize"
	"github.com/lucasew/fdb/internal/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const now = 1_700_000_000

type fixedPolicy int

func (f fixedPolicy) ItemsToEvict(int) int { return int(f) }

func TestApply(t *testing.T) {
	t.Run("No Policies", func(t *testing.T) {
		items := []item.Item{{Path: "/b", Atime: now, Hits: 1}, {Path: "/a", Atime: now, Hits: 9}}
		kept, evicted := eviction.Apply(items, nil, now)
		assert.Equal(t, []string{"/b", "/a"}, pathsOf(kept))
		assert.Empty(t, evicted)
	})

	t.Run("Within Limit Keeps Order", func(t *testing.T) {
		items := []item.Item{{Path: "/b", Atime: now, Hits: 1}, {Path: "/a", Atime: now, Hits: 9}}
		kept, evicted := eviction.Apply(items, []policy.Policy{&maxsize.Policy{MaxItems: 2}}, now)
		assert.Equal(t, []string{"/b", "/a"}, pathsOf(kept))
		assert.Empty(t, evicted)
	})

	t.Run("Evicts Lowest Frecency", func(t *testing.T) {
		items := []item.Item{
			{Path: "/low", Atime: now - 1_000_000, Hits: 1},
			{Path: "/high", Atime: now, Hits: 10},
			{Path: "/mid", Atime: now - 10, Hits: 2},
			{Path: "/lowest", Atime: now - 50_000_000, Hits: 1},
		}
		kept, evicted := eviction.Apply(items, []policy.Policy{&maxsize.Policy{MaxItems: 2}}, now)
		assert.Equal(t, []string{"/high", "/mid"}, pathsOf(kept))
		assert.ElementsMatch(t, []string{"/low", "/lowest"}, pathsOf(evicted))
	})

	t.Run("Ties Evict Later Items", func(t *testing.T) {
		items := []item.Item{
			{Path: "/first", Atime: now, Hits: 1},
			{Path: "/second", Atime: now, Hits: 1},
			{Path: "/third", Atime: now, Hits: 1},
		}
		kept, evicted := eviction.Apply(items, []policy.Policy{&maxsize.Policy{MaxItems: 2}}, now)
		assert.Equal(t, []string{"/first", "/second"}, pathsOf(kept))
		assert.Equal(t, []string{"/third"}, pathsOf(evicted))
	})

	t.Run("Largest Demand Wins", func(t *testing.T) {
		items := []item.Item{
			{Path: "/a", Atime: now, Hits: 3},
			{Path: "/b", Atime: now, Hits: 2},
			{Path: "/c", Atime: now, Hits: 1},
		}
		kept, _ := eviction.Apply(items, []policy.Policy{fixedPolicy(1), fixedPolicy(2)}, now)
		assert.Equal(t, []string{"/a"}, pathsOf(kept))
	})

	t.Run("Demand Beyond Size", func(t *testing.T) {
		items := []item.Item{{Path: "/a", Atime: now, Hits: 3}}
		kept, evicted := eviction.Apply(items, []policy.Policy{fixedPolicy(5)}, now)
		assert.Empty(t, kept)
		require.Len(t, evicted, 1)
	})
}

func pathsOf(items []item.Item) []string {
	out := make([]string, len(items))
	for n, it := range items {
		out[n] = it.Path
	}
	return out
}
