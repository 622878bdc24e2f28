//go:build enchdebug

package ench

import "fmt"

// checkKind panics on an undeclared kind: a bad index means some caller
// would see a kind as present while another sees it absent.
func checkKind(k Kind) bool {
	if !k.Valid() {
		panic(fmt.Sprintf("ench: kind index %d out of range (NumKinds=%d)", uint8(k), NumKinds))
	}
	return true
}
