package policy

// Policy defines the interface for checking if eviction is needed.
type Policy interface {
	// ItemsToEvict returns how many items should be evicted from a store
	// currently holding count items. Returns 0 if no eviction is needed.
	ItemsToEvict(count int) int
}
