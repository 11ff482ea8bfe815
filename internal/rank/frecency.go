package rank

import "github.com/lucasew/fdb/internal/item"

// Frecency is the default ranking: hits weighted by recency.
const Frecency = "frecency"

type frecency struct{}

func init() {
	Register(Frecency, frecency{})
}

// SortByFrecency orders items by their frecency score at now.
func SortByFrecency(items []item.Item, now int64) {
	byKeyDesc(items, func(it item.Item) float64 { return it.Frecency(now) })
}

func (frecency) Sort(items []item.Item, now int64) {
	SortByFrecency(items, now)
}
