package pie

import (
	"sync"
	"time"
)

// ReloadRecord summarizes one reload attempt, settled or rejected.
type ReloadRecord struct {
	// Kind is the reconciliation kind, or "rejected" for a refused reload.
	Kind string

	// Slices is the slice count the reload targeted.
	Slices int

	// Err is non-nil for rejected reloads.
	Err error

	// At is the time the record was taken.
	At time.Time
}

// reloadRing is a thread-safe ring buffer of recent reload records.
type reloadRing struct {
	mu      sync.RWMutex
	records []ReloadRecord
	size    int
	head    int
	count   int
}

// newReloadRing creates a ring buffer with the given capacity.
// If size is 0, history is disabled and the ring is nil.
func newReloadRing(size int) *reloadRing {
	if size <= 0 {
		return nil
	}
	return &reloadRing{
		records: make([]ReloadRecord, size),
		size:    size,
	}
}

// push adds a record to the ring buffer.
func (r *reloadRing) push(rec ReloadRecord) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[r.head] = rec
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// all returns the recorded reloads, oldest first.
func (r *reloadRing) all() []ReloadRecord {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]ReloadRecord, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.records[(start+i)%r.size]
	}
	return result
}
