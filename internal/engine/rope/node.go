package rope

import (
	"slices"
	"strings"
)

const (
	// maxChildren bounds the fan-out of internal nodes.
	maxChildren = 8

	// maxLeafChunks bounds the number of chunks in a leaf.
	maxLeafChunks = 4
)

// Node is a node of the rope's B+ tree. Leaves (height 0) hold chunks;
// internal nodes hold children and a copy of each child's summary so that
// seeking never has to touch the children themselves. Nodes are never
// modified once built, so subtrees are shared freely between ropes.
type Node struct {
	height  uint8
	summary TextSummary

	children       []*Node
	childSummaries []TextSummary

	chunks []Chunk
}

// leafNode returns a leaf holding chunks.
func leafNode(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

// branchNode returns an internal node over children, which must not be
// empty.
func branchNode(children []*Node) *Node {
	n := &Node{
		children:       children,
		childSummaries: make([]TextSummary, len(children)),
	}
	for i, c := range children {
		n.height = max(n.height, c.height+1)
		n.childSummaries[i] = c.summary
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

// balanced stacks nodes into a tree no node of which exceeds maxChildren.
func balanced(nodes []*Node) *Node {
	switch len(nodes) {
	case 0:
		return leafNode(nil)
	case 1:
		return nodes[0]
	}
	for len(nodes) > maxChildren {
		parents := make([]*Node, 0, (len(nodes)+maxChildren-1)/maxChildren)
		for group := range slices.Chunk(nodes, maxChildren) {
			parents = append(parents, branchNode(group))
		}
		nodes = parents
	}
	return branchNode(nodes)
}

// IsLeaf reports whether n holds chunks.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the number of bytes under n.
func (n *Node) Len() int {
	return n.summary.Bytes
}

// width returns the number of entries (chunks or children) in n.
func (n *Node) width() int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	return len(n.children)
}

// entryLen returns the byte length of entry i.
func (n *Node) entryLen(i int) int {
	if n.IsLeaf() {
		return n.chunks[i].Len()
	}
	return n.childSummaries[i].Bytes
}

// locate returns the entry holding byte offset and the offset within it.
// Offsets at or past the end resolve to the last entry.
func (n *Node) locate(offset int) (int, int) {
	last := n.width() - 1
	for i := range last {
		l := n.entryLen(i)
		if offset < l {
			return i, offset
		}
		offset -= l
	}
	return last, offset
}

// findChildByOffset returns the child of an internal node that holds
// offset, and the offset within that child.
func (n *Node) findChildByOffset(offset int) (int, int) {
	if n.IsLeaf() {
		return -1, 0
	}
	return n.locate(offset)
}

// visit calls fn with the pieces of text in [start, end) in order.
func (n *Node) visit(start, end int, fn func(string)) {
	if start >= end {
		return
	}
	pos := 0
	for i := range n.width() {
		l := n.entryLen(i)
		lo, hi := max(start-pos, 0), min(end-pos, l)
		if lo < hi {
			if n.IsLeaf() {
				fn(n.chunks[i].text[lo:hi])
			} else {
				n.children[i].visit(lo, hi, fn)
			}
		}
		pos += l
		if pos >= end {
			return
		}
	}
}

// appendTo writes all text under n to sb.
func (n *Node) appendTo(sb *strings.Builder) {
	n.visit(0, n.Len(), func(s string) { sb.WriteString(s) })
}

// textInRange returns the text in [start, end), clipped to n.
func (n *Node) textInRange(start, end int) string {
	start, end = max(start, 0), min(end, n.Len())
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	n.visit(start, end, func(s string) { sb.WriteString(s) })
	return sb.String()
}

// split returns trees holding [0, offset) and [offset, Len()).
func (n *Node) split(offset int) (*Node, *Node) {
	switch {
	case offset <= 0:
		return leafNode(nil), n
	case offset >= n.Len():
		return n, leafNode(nil)
	}

	i, within := n.locate(offset)
	if n.IsLeaf() {
		left := slices.Clone(n.chunks[:i])
		right := slices.Clone(n.chunks[i+1:])
		l, r := n.chunks[i].Split(within)
		if !l.IsEmpty() {
			left = append(left, l)
		}
		if !r.IsEmpty() {
			right = append([]Chunk{r}, right...)
		}
		return leafNode(left), leafNode(right)
	}

	left := slices.Clone(n.children[:i])
	right := slices.Clone(n.children[i+1:])
	l, r := n.children[i].split(within)
	if l.Len() > 0 {
		left = append(left, l)
	}
	if r.Len() > 0 {
		right = append([]*Node{r}, right...)
	}
	return balanced(left), balanced(right)
}

// concat joins two trees, raising the shorter one to the height of the
// taller before merging their top levels.
func concat(left, right *Node) *Node {
	switch {
	case left == nil || left.Len() == 0:
		if right == nil {
			return leafNode(nil)
		}
		return right
	case right == nil || right.Len() == 0:
		return left
	}

	for left.height < right.height {
		left = branchNode([]*Node{left})
	}
	for right.height < left.height {
		right = branchNode([]*Node{right})
	}

	if left.IsLeaf() && right.IsLeaf() {
		if len(left.chunks)+len(right.chunks) <= maxLeafChunks {
			return leafNode(slices.Concat(left.chunks, right.chunks))
		}
		return branchNode([]*Node{left, right})
	}
	return balanced(slices.Concat(left.children, right.children))
}

// seek descends to the first chunk whose end satisfies past, given the
// summary of all text up to and including that chunk. It returns the
// summary of the text preceding the chunk. When no chunk satisfies past the
// last chunk is returned; ok is false only for an empty tree.
func (n *Node) seek(past func(TextSummary) bool) (before TextSummary, chunk Chunk, ok bool) {
	node := n
	for !node.IsLeaf() {
		last := len(node.children) - 1
		idx := last
		for i, cs := range node.childSummaries {
			if i == last || past(before.Add(cs)) {
				idx = i
				break
			}
			before = before.Add(cs)
		}
		node = node.children[idx]
	}

	if len(node.chunks) == 0 {
		return before, Chunk{}, false
	}
	last := len(node.chunks) - 1
	for i, c := range node.chunks {
		if i == last || past(before.Add(c.summary)) {
			return before, c, true
		}
		before = before.Add(c.summary)
	}
	return before, Chunk{}, false
}
