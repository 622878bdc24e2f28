//go:build !enchdebug

package ench

// checkKind reports whether k is usable as a table index.
func checkKind(k Kind) bool {
	return k.Valid()
}
