package ench

import "math/bits"

const kindWords = (int(NumKinds) + 63) / 64

// KindSet is a fixed-size bitset of kinds. The zero value is empty.
type KindSet [kindWords]uint64

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	if !k.Valid() {
		return false
	}
	return s[k/64]&(1<<(k%64)) != 0
}

// Add puts k in the set.
func (s *KindSet) Add(k Kind) {
	if !checkKind(k) {
		return
	}
	s[k/64] |= 1 << (k % 64)
}

// Del removes k from the set.
func (s *KindSet) Del(k Kind) {
	if !checkKind(k) {
		return
	}
	s[k/64] &^= 1 << (k % 64)
}

// Len returns the number of kinds in the set.
func (s KindSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// Empty reports whether the set has no kinds.
func (s KindSet) Empty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// Kinds returns the members in ascending order.
func (s KindSet) Kinds() []Kind {
	out := make([]Kind, 0, s.Len())
	for k := Kind(0); k < NumKinds; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
