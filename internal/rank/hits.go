package rank

import "github.com/lucasew/fdb/internal/item"

// Hits ranks the most visited items first.
const Hits = "hits"

type hits struct{}

func init() {
	Register(Hits, hits{})
}

func (hits) Sort(items []item.Item, _ int64) {
	byKeyDesc(items, func(it item.Item) uint32 { return it.Hits })
}
