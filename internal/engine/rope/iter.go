package rope

import "unicode/utf8"

// iterFrame represents a position in the tree traversal.
type iterFrame struct {
	node   *Node
	idx    int // child index for internal nodes, chunk index for leaves
	offset int // absolute byte offset at the start of node
}

// treeCursor walks the chunks of a rope in either direction.
type treeCursor struct {
	stack []iterFrame
}

// seek positions the cursor at the chunk containing offset, or at the last
// chunk when offset is at or past the end.
func (c *treeCursor) seek(root *Node, offset int) {
	c.stack = c.stack[:0]
	if root == nil {
		return
	}
	node, base := root, 0
	for !node.IsLeaf() {
		idx, within := node.findChildByOffset(offset - base)
		childStart := base + (offset - base - within)
		c.stack = append(c.stack, iterFrame{node: node, idx: idx, offset: base})
		node, base = node.children[idx], childStart
	}

	idx, _ := node.locate(offset - base)
	c.stack = append(c.stack, iterFrame{node: node, idx: idx, offset: base})
}

// chunk returns the current chunk and its absolute start offset.
func (c *treeCursor) chunk() (Chunk, int, bool) {
	if len(c.stack) == 0 {
		return Chunk{}, 0, false
	}
	top := c.stack[len(c.stack)-1]
	if top.idx < 0 || top.idx >= len(top.node.chunks) {
		return Chunk{}, 0, false
	}
	start := top.offset
	for _, chunk := range top.node.chunks[:top.idx] {
		start += chunk.Len()
	}
	return top.node.chunks[top.idx], start, true
}

// next advances to the following chunk.
func (c *treeCursor) next() bool {
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		top.idx++
		if top.idx < top.node.width() {
			c.descend(false)
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return false
}

// prev moves to the preceding chunk.
func (c *treeCursor) prev() bool {
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		top.idx--
		if top.idx >= 0 {
			c.descend(true)
			return true
		}
		c.stack = c.stack[:len(c.stack)-1]
	}
	return false
}

// descend pushes frames from the top node down to a leaf, entering each
// child at its first or last position.
func (c *treeCursor) descend(fromEnd bool) {
	for {
		top := c.stack[len(c.stack)-1]
		if top.node.IsLeaf() {
			return
		}
		offset := top.offset
		for _, s := range top.node.childSummaries[:top.idx] {
			offset += s.Bytes
		}
		child := top.node.children[top.idx]
		idx := 0
		if fromEnd {
			idx = child.width() - 1
		}
		c.stack = append(c.stack, iterFrame{node: child, idx: idx, offset: offset})
	}
}

// ChunkIterator iterates over the text of a byte range chunk by chunk.
type ChunkIterator struct {
	cursor   treeCursor
	root     *Node
	start    int
	end      int
	reversed bool
	started  bool
	done     bool
	text     string
	offset   int
}

// Chunks returns an iterator over the text in [start, end).
func (r Rope) Chunks(start, end int) *ChunkIterator {
	start = min(max(start, 0), r.Len())
	end = min(max(end, start), r.Len())
	return &ChunkIterator{root: r.root, start: start, end: end}
}

// ReversedChunks returns an iterator over the text in [start, end), last
// chunk first.
func (r Rope) ReversedChunks(start, end int) *ChunkIterator {
	it := r.Chunks(start, end)
	it.reversed = true
	return it
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	if it.done || it.start >= it.end {
		it.done = true
		return false
	}

	for {
		var ok bool
		switch {
		case !it.started && it.reversed:
			it.started = true
			it.cursor.seek(it.root, it.end-1)
			ok = true
		case !it.started:
			it.started = true
			it.cursor.seek(it.root, it.start)
			ok = true
		case it.reversed:
			ok = it.cursor.prev()
		default:
			ok = it.cursor.next()
		}
		if !ok {
			it.done = true
			return false
		}

		chunk, chunkStart, ok := it.cursor.chunk()
		if !ok {
			it.done = true
			return false
		}
		chunkEnd := chunkStart + chunk.Len()
		if (!it.reversed && chunkStart >= it.end) || (it.reversed && chunkEnd <= it.start) {
			it.done = true
			return false
		}

		lo := max(chunkStart, it.start)
		hi := min(chunkEnd, it.end)
		if lo >= hi {
			continue
		}
		it.text = chunk.text[lo-chunkStart : hi-chunkStart]
		it.offset = lo
		return true
	}
}

// Text returns the text of the current chunk.
func (it *ChunkIterator) Text() string {
	return it.text
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.offset
}

// CharIterator iterates over the chars of a rope starting at an offset.
type CharIterator struct {
	chunks   *ChunkIterator
	reversed bool
	text     string
	base     int
	current  rune
	offset   int
}

// CharsAt returns an iterator over chars from offset to the end of the text.
func (r Rope) CharsAt(offset int) *CharIterator {
	return &CharIterator{chunks: r.Chunks(offset, r.Len())}
}

// ReversedCharsAt returns an iterator over chars from offset back to the
// start of the text.
func (r Rope) ReversedCharsAt(offset int) *CharIterator {
	return &CharIterator{chunks: r.ReversedChunks(0, offset), reversed: true}
}

// Next advances to the next char.
// Returns true if there is a char, false if iteration is complete.
func (it *CharIterator) Next() bool {
	for len(it.text) == 0 {
		if !it.chunks.Next() {
			return false
		}
		it.text = it.chunks.Text()
		it.base = it.chunks.Offset()
	}

	if it.reversed {
		c, size := utf8.DecodeLastRuneInString(it.text)
		it.text = it.text[:len(it.text)-size]
		it.current = c
		it.offset = it.base + len(it.text)
		return true
	}

	c, size := utf8.DecodeRuneInString(it.text)
	it.current = c
	it.offset = it.base
	it.text = it.text[size:]
	it.base += size
	return true
}

// Rune returns the current char.
func (it *CharIterator) Rune() rune {
	return it.current
}

// Offset returns the byte offset at which the current char starts.
func (it *CharIterator) Offset() int {
	return it.offset
}
