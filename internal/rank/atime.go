package rank

import "github.com/lucasew/fdb/internal/item"

// Atime ranks the most recently touched items first.
const Atime = "atime"

type atime struct{}

func init() {
	Register(Atime, atime{})
}

func (atime) Sort(items []item.Item, _ int64) {
	byKeyDesc(items, func(it item.Item) int64 { return it.Atime })
}
