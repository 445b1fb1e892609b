package rope

import "unicode/utf8"

// RawChunkSize is the maximum number of bytes carried by a RawChunk.
const RawChunkSize = 128

// RawChunk is a view over at most RawChunkSize bytes of text together with
// masks describing it. Bit i of Chars is set iff byte i starts a code point;
// Tabs and Newlines mark '\t' and '\n' bytes and are subsets of Chars.
type RawChunk struct {
	Text     string
	Chars    Bitmap
	Tabs     Bitmap
	Newlines Bitmap
}

// NewRawChunk computes the masks for text, which must not exceed
// RawChunkSize bytes.
func NewRawChunk(text string) RawChunk {
	c := RawChunk{Text: text}
	for i := 0; i < len(text) && i < RawChunkSize; i++ {
		b := text[i]
		if !utf8.RuneStart(b) {
			continue
		}
		c.Chars = c.Chars.Set(i)
		switch b {
		case '\t':
			c.Tabs = c.Tabs.Set(i)
		case '\n':
			c.Newlines = c.Newlines.Set(i)
		}
	}
	return c
}

// RawChunkIterator yields RawChunks over a byte range of a rope.
type RawChunkIterator struct {
	chunks  *ChunkIterator
	pending string
	next    int
	chunk   RawChunk
	offset  int
}

// RawChunks returns an iterator over [start, end) split into RawChunks.
// Concatenating the chunk texts yields the range; no chunk is empty and no
// chunk splits a UTF-8 sequence.
func (r Rope) RawChunks(start, end int) *RawChunkIterator {
	return &RawChunkIterator{chunks: r.Chunks(start, end)}
}

// Next advances to the next raw chunk.
func (it *RawChunkIterator) Next() bool {
	if len(it.pending) == 0 {
		if !it.chunks.Next() {
			return false
		}
		it.pending = it.chunks.Text()
		it.next = it.chunks.Offset()
	}

	n := len(it.pending)
	if n > RawChunkSize {
		n = RawChunkSize
		for n > 0 && !utf8.RuneStart(it.pending[n]) {
			n--
		}
		if n == 0 {
			n = RawChunkSize
		}
	}

	it.chunk = NewRawChunk(it.pending[:n])
	it.offset = it.next
	it.pending = it.pending[n:]
	it.next += n
	return true
}

// Chunk returns the current raw chunk.
func (it *RawChunkIterator) Chunk() RawChunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current raw chunk.
func (it *RawChunkIterator) Offset() int {
	return it.offset
}
