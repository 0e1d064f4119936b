package catalog

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDAllocator issues identifiers that are never repeated for the lifetime of
// the process, including for calls made in the same instant.
type IDAllocator interface {
	Next() string
}

// UUIDAllocator issues random v4 UUIDs.
type UUIDAllocator struct{}

// Next returns a new v4 UUID string.
func (UUIDAllocator) Next() string {
	return uuid.NewString()
}

// SequenceAllocator issues prefix+N for a strictly increasing counter N.
type SequenceAllocator struct {
	prefix string
	n      atomic.Uint64
}

// NewSequenceAllocator creates an allocator whose first id is prefix+(start+1).
func NewSequenceAllocator(prefix string, start uint64) *SequenceAllocator {
	a := &SequenceAllocator{prefix: prefix}
	a.n.Store(start)
	return a
}

// Next returns the next id in the sequence.
func (a *SequenceAllocator) Next() string {
	return a.prefix + strconv.FormatUint(a.n.Add(1), 10)
}

// Observe moves the counter past an id that was issued elsewhere (seed data),
// so the allocator never hands it out again.
func (a *SequenceAllocator) Observe(id string) {
	rest, ok := strings.CutPrefix(id, a.prefix)
	if !ok {
		return
	}
	v, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return
	}
	for {
		cur := a.n.Load()
		if v <= cur || a.n.CompareAndSwap(cur, v) {
			return
		}
	}
}

// idObserver is implemented by allocators that need to see seed ids.
type idObserver interface {
	Observe(id string)
}
