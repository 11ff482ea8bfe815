package eviction

import (
	"log/slog"

	"github.com/lucasew/fdb/internal/eviction/policy"
	"github.com/lucasew/fdb/internal/item"
	"github.com/lucasew/fdb/internal/rank"
)

// Apply evicts the lowest-frecency items until every policy is satisfied.
//
// The largest demand among policies wins. When eviction happens the returned
// slice is sorted by frecency at now, ties keeping their prior order; otherwise
// items are returned untouched. The second result holds the evicted items.
func Apply(items []item.Item, policies []policy.Policy, now int64) ([]item.Item, []item.Item) {
	var toEvict int
	for _, p := range policies {
		if n := p.ItemsToEvict(len(items)); n > toEvict {
			toEvict = n
		}
	}

	if toEvict <= 0 {
		return items, nil
	}
	if toEvict > len(items) {
		toEvict = len(items)
	}

	rank.SortByFrecency(items, now)

	keep := len(items) - toEvict
	victims := make([]item.Item, toEvict)
	copy(victims, items[keep:])

	slog.Debug("Evicting items", "count", toEvict, "kept", keep)
	return items[:keep], victims
}
