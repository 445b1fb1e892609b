package movement

import "github.com/rivo/uniseg"

// PrevGraphemeBoundary returns the start of the grapheme cluster that ends
// at or contains byte index i of s.
func PrevGraphemeBoundary(s string, i int) int {
	state, pos := -1, 0
	for pos < len(s) {
		cluster, _, _, next := uniseg.FirstGraphemeClusterInString(s[pos:], state)
		end := pos + len(cluster)
		if end >= i {
			return pos
		}
		pos, state = end, next
	}
	return pos
}

// NextGraphemeBoundary returns the end of the grapheme cluster that starts
// at or contains byte index i of s.
func NextGraphemeBoundary(s string, i int) int {
	state, pos := -1, 0
	for pos < len(s) {
		cluster, _, _, next := uniseg.FirstGraphemeClusterInString(s[pos:], state)
		pos, state = pos+len(cluster), next
		if pos > i {
			return pos
		}
	}
	return len(s)
}
