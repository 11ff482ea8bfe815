package command

import (
	"slices"

	"github.com/lucasew/fdb/internal/item"
)

// Delete drops every item whose path exactly equals one of paths.
// Missing paths are ignored and survivors keep their order.
func Delete(items []item.Item, paths []string) []item.Item {
	drop := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		drop[p] = struct{}{}
	}

	return slices.DeleteFunc(items, func(it item.Item) bool {
		_, ok := drop[it.Path]
		return ok
	})
}
