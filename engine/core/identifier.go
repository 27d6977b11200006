package core

import "fmt"

// IDAllocator hands out small integer ids and reuses released slots first.
type IDAllocator struct {
	owners []interface{}
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Acquire returns a free id for owner. Ids start at 1 so the zero value can
// be used as "no id" by callers.
func (a *IDAllocator) Acquire(owner interface{}) uint32 {
	if owner == nil {
		owner = struct{}{}
	}
	if len(a.owners) == 0 {
		// slot 0 is reserved
		a.owners = make([]interface{}, 1, 100)
		a.owners[0] = a
	}
	for i := 1; i < len(a.owners); i++ {
		// Existing free spot. Take it.
		if a.owners[i] == nil {
			a.owners[i] = owner
			return uint32(i)
		}
	}

	// If here, no existing free slots. Need a new id, so push one.
	a.owners = append(a.owners, owner)
	return uint32(len(a.owners) - 1)
}

// Release frees id so it can be handed out again.
func (a *IDAllocator) Release(id uint32) error {
	if len(a.owners) == 0 {
		return ErrIDNotInitialized
	}
	if id == 0 || int(id) >= len(a.owners) {
		return fmt.Errorf("release id '%d' (max=%d): %w", id, len(a.owners)-1, ErrIDOutOfRange)
	}
	// Just zero out the entry, making it available for use.
	a.owners[id] = nil
	return nil
}

// Owner returns the owner registered for id, or nil.
func (a *IDAllocator) Owner(id uint32) interface{} {
	if id == 0 || int(id) >= len(a.owners) {
		return nil
	}
	return a.owners[id]
}

// Live reports the number of ids currently held.
func (a *IDAllocator) Live() int {
	n := 0
	for i := 1; i < len(a.owners); i++ {
		if a.owners[i] != nil {
			n++
		}
	}
	return n
}
