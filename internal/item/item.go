package item

// Item is one tracked path with its access statistics.
//
// Path is the logical key. Atime is the unix time (seconds) of the last
// touch and Hits counts touches, starting at 1.
type Item struct {
	Path  string `yaml:"path"`
	Atime int64  `yaml:"atime"`
	Hits  uint32 `yaml:"hits"`
}

// New creates an item for a path seen for the first time at now.
func New(path string, now int64) Item {
	return Item{
		Path:  path,
		Atime: now,
		Hits:  1,
	}
}

// Touch records another visit at now.
func (i *Item) Touch(now int64) {
	if i.Hits < ^uint32(0) {
		i.Hits++
	}
	i.Atime = now
}

// Frecency scores the item at now. Higher is more relevant.
//
// The score decays with age, so it is recomputed whenever ranking is needed
// and never persisted.
func (i Item) Frecency(now int64) float64 {
	age := now - i.Atime
	if age < 0 {
		age = 0
	}
	return float64(i.Hits) / (0.25 + 3e-6*float64(age))
}

// Index returns the position of the item with the given path, or -1.
func Index(items []Item, path string) int {
	for n := range items {
		if items[n].Path == path {
			return n
		}
	}
	return -1
}
