package command

import (
	"github.com/lucasew/fdb/internal/eviction"
	"github.com/lucasew/fdb/internal/eviction/policy"
	"github.com/lucasew/fdb/internal/item"
)

// Add records a visit to each path, in order, then applies the eviction
// policies. Known paths are touched; unknown paths are appended with one hit.
func Add(items []item.Item, paths []string, policies []policy.Policy, now int64) []item.Item {
	for _, path := range paths {
		if n := item.Index(items, path); n >= 0 {
			items[n].Touch(now)
			continue
		}
		items = append(items, item.New(path, now))
	}

	items, _ = eviction.Apply(items, policies, now)
	return items
}

// Merge folds imported items into items. A known path accumulates the
// imported hits and keeps the newer atime; an unknown path is appended with
// at least one hit. Eviction policies apply afterwards, as with Add.
func Merge(items, imported []item.Item, policies []policy.Policy, now int64) []item.Item {
	for _, in := range imported {
		in.Hits = max(in.Hits, 1)

		n := item.Index(items, in.Path)
		if n < 0 {
			items = append(items, in)
			continue
		}

		cur := &items[n]
		if sum := uint64(cur.Hits) + uint64(in.Hits); sum > uint64(^uint32(0)) {
			cur.Hits = ^uint32(0)
		} else {
			cur.Hits = uint32(sum)
		}
		cur.Atime = max(cur.Atime, in.Atime)
	}

	items, _ = eviction.Apply(items, policies, now)
	return items
}
