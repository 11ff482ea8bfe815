package maxsize

// Policy triggers eviction when the store holds more than MaxItems items.
// A MaxItems of 0 means unlimited.
type Policy struct {
	MaxItems int
}

func (p *Policy) ItemsToEvict(count int) int {
	if p.MaxItems > 0 && count > p.MaxItems {
		return count - p.MaxItems
	}
	return 0
}
