// Package slot implements the record stores on top of named slots, each
// holding one collection as a JSON array. Backends only need to load a slot
// and replace it atomically.
package slot

import "context"

// CountersSlot holds the JSON object backing Sequence.
const CountersSlot = "counters"

// Slots is a key-value backend holding one JSON document per name.
type Slots interface {
	// Load returns the slot contents, or nil if the slot was never written.
	Load(ctx context.Context, name string) ([]byte, error)
	// Mutate passes the current contents to fn and stores what it returns.
	// Concurrent Mutate calls on the same name must not lose updates; fn may
	// be invoked more than once. An error from fn aborts without writing.
	Mutate(ctx context.Context, name string, fn func(current []byte) ([]byte, error)) error
}
