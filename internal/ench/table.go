package ench

// Table is the per-monster enchantment storage: one optional slot per kind.
// Presence is the slot itself, so there is no separate cache to keep in
// step with the records.
//
// A Table is owned by exactly one monster and is only touched on that
// monster's turn; it is not safe for concurrent use.
type Table struct {
	slots   [NumKinds]*Record
	count   int
	pending KindSet
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Has reports whether an enchantment of kind k is active.
func (t *Table) Has(k Kind) bool {
	if !checkKind(k) {
		return false
	}
	return t.slots[k] != nil
}

// HasInRange reports whether any kind in [lo, hi] is active.
func (t *Table) HasInRange(lo, hi Kind) bool {
	if !checkKind(lo) || !checkKind(hi) {
		return false
	}
	for k := lo; k <= hi; k++ {
		if t.slots[k] != nil {
			return true
		}
	}
	return false
}

// Get returns a copy of the record for k.
func (t *Table) Get(k Kind) (Record, bool) {
	if !checkKind(k) || t.slots[k] == nil {
		return Record{}, false
	}
	return *t.slots[k], true
}

// GetInRange returns the first active record in [lo, hi].
func (t *Table) GetInRange(lo, hi Kind) (Record, bool) {
	if !checkKind(lo) || !checkKind(hi) {
		return Record{}, false
	}
	for k := lo; k <= hi; k++ {
		if r := t.slots[k]; r != nil {
			return *r, true
		}
	}
	return Record{}, false
}

// Install stores r in an empty slot. Returns false if the slot is taken or
// the kind is invalid.
func (t *Table) Install(r Record) bool {
	if !checkKind(r.Kind) || t.slots[r.Kind] != nil {
		return false
	}
	rec := r
	t.slots[r.Kind] = &rec
	t.count++
	return true
}

// Update overwrites the record for r.Kind if one is active.
func (t *Table) Update(r Record) bool {
	if !checkKind(r.Kind) || t.slots[r.Kind] == nil {
		return false
	}
	*t.slots[r.Kind] = r
	return true
}

// Erase drops the record for k without running any handler.
func (t *Table) Erase(k Kind) (Record, bool) {
	if !checkKind(k) || t.slots[k] == nil {
		return Record{}, false
	}
	r := *t.slots[k]
	t.slots[k] = nil
	t.count--
	t.pending.Del(k)
	return r, true
}

// Len returns the number of active records.
func (t *Table) Len() int {
	return t.count
}

// Kinds snapshots the set of active kinds.
func (t *Table) Kinds() KindSet {
	var s KindSet
	for k := Kind(0); k < NumKinds; k++ {
		if t.slots[k] != nil {
			s.Add(k)
		}
	}
	return s
}

// Records returns copies of all active records in kind order.
func (t *Table) Records() []Record {
	out := make([]Record, 0, t.count)
	for k := Kind(0); k < NumKinds; k++ {
		if r := t.slots[k]; r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// MarkPending records that removal of k was vetoed and must be retried.
func (t *Table) MarkPending(k Kind) {
	if t.Has(k) {
		t.pending.Add(k)
	}
}

// ClearPending forgets a pending removal of k.
func (t *Table) ClearPending(k Kind) {
	t.pending.Del(k)
}

// Pending returns the kinds whose removal is awaiting a retry.
func (t *Table) Pending() KindSet {
	return t.pending
}

// Clear drops every record without running handlers.
func (t *Table) Clear() {
	t.slots = [NumKinds]*Record{}
	t.count = 0
	t.pending = KindSet{}
}
