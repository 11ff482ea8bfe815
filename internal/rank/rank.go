package rank

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/lucasew/fdb/internal/item"
)

// Strategy orders items for output or eviction.
type Strategy interface {
	// Sort reorders items in place, most relevant first.
	// Items comparing equal keep their relative order.
	Sort(items []item.Item, now int64)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Strategy)
)

// Register makes a strategy available under name.
func Register(name string, s Strategy) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = s
}

// Get returns the strategy registered under name.
func Get(name string) (Strategy, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown sort method: %s", name)
	}
	return s, nil
}

// Names lists the registered strategy names in lexical order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// byKeyDesc sorts stably by a key, largest first.
func byKeyDesc[K int64 | uint32 | float64](items []item.Item, key func(item.Item) K) {
	slices.SortStableFunc(items, func(a, b item.Item) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		}
		return 0
	})
}
