package handle

import (
	"sync"

	clruntime "github.com/wippyai/cl-runtime"
)

// Table is an in-memory handle table with kind tagging. It is safe for
// concurrent use.
type Table struct {
	entries  []entry
	freeList []clruntime.Handle
	mu       sync.RWMutex
}

type entry struct {
	value any
	kind  clruntime.ObjectKind
	valid bool
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]clruntime.Handle, 0, 16),
	}
}

// Insert stores a value and returns its handle.
func (t *Table) Insert(kind clruntime.ObjectKind, value any) clruntime.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := entry{kind: kind, value: value, valid: true}

	if len(t.freeList) > 0 {
		h := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
		return h
	}

	t.entries = append(t.entries, e)
	return clruntime.Handle(len(t.entries))
}

// Get retrieves a value by handle.
func (t *Table) Get(h clruntime.Handle) (any, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if uint64(idx) >= uint64(len(t.entries)) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.value, true
}

// GetKind retrieves a value only if the entry was inserted with the
// expected kind.
func (t *Table) GetKind(h clruntime.Handle, kind clruntime.ObjectKind) (any, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if uint64(idx) >= uint64(len(t.entries)) {
		return nil, false
	}

	e := t.entries[idx]
	if !e.valid || e.kind != kind {
		return nil, false
	}
	return e.value, true
}

// Kind reports the kind a handle was inserted with.
func (t *Table) Kind(h clruntime.Handle) (clruntime.ObjectKind, bool) {
	if h == 0 {
		return 0, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if uint64(idx) >= uint64(len(t.entries)) {
		return 0, false
	}

	e := t.entries[idx]
	if !e.valid {
		return 0, false
	}
	return e.kind, true
}

// Remove invalidates a handle and returns its value. The slot is recycled
// for future inserts.
func (t *Table) Remove(h clruntime.Handle) (any, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := h - 1
	if uint64(idx) >= uint64(len(t.entries)) {
		return nil, false
	}

	e := &t.entries[idx]
	if !e.valid {
		return nil, false
	}

	value := e.value
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, h)

	return value, true
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.freeList)
}
