package naming

import (
	"fmt"
	"sync"
)

// CollisionResolver tracks sample identifiers claimed by input files and
// resolves duplicates by appending "_dupN" suffixes. Two inputs under
// different subdirectories can reduce to the same identifier; without
// disambiguation the later sample would silently overwrite the earlier
// one's trimmed output, reports, and log. All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // sample ID → input path that owns it
	counters map[string]int    // base ID → next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final identifier for input. If id is unclaimed (or
// already owned by input), it is returned as-is; otherwise an "_dupN"
// variant is generated.
func (cr *CollisionResolver) Resolve(input, id string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[id]
	if !exists || owner == input {
		cr.owners[id] = input
		return id
	}

	counter := cr.counters[id]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := fmt.Sprintf("%s_dup%d", id, counter)
		cOwner, cExists := cr.owners[candidate]
		if !cExists || cOwner == input {
			cr.counters[id] = counter + 1
			cr.owners[candidate] = input
			return candidate
		}
		counter++
	}
}
