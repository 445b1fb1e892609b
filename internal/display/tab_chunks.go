package display

import (
	"strings"

	"github.com/zakuhq/zaku/internal/engine/rope"
)

var spaces = strings.Repeat(" ", MaxTabSize)

// Chunk is a run of display text with masks describing its bytes.
// Bit i of Chars marks the first byte of a char, Tabs and Newlines mark
// '\t' and '\n' bytes. Chunks produced for tabs carry spaces and have IsTab
// set.
type Chunk struct {
	Text     string
	Chars    rope.Bitmap
	Tabs     rope.Bitmap
	Newlines rope.Bitmap
	IsTab    bool
}

// advance drops the first n bytes of the chunk.
func (c Chunk) advance(n int) Chunk {
	return Chunk{
		Text:     c.Text[n:],
		Chars:    c.Chars.Shr(n),
		Tabs:     c.Tabs.Shr(n),
		Newlines: c.Newlines.Shr(n),
		IsTab:    c.IsTab,
	}
}

// TabChunks iterates display text, replacing each tab with the spaces it
// expands to.
type TabChunks struct {
	input              *rope.RawChunkIterator
	chunk              Chunk
	current            Chunk
	column             uint32
	inputColumn        uint32
	maxExpansionColumn uint32
	outputPosition     TabPoint
	maxOutputPosition  TabPoint
	tabSize            uint32
	insideLeadingTab   bool
}

// Chunk returns the current chunk.
func (it *TabChunks) Chunk() Chunk {
	return it.current
}

// Position returns the tab point at the end of the current chunk.
func (it *TabChunks) Position() TabPoint {
	return it.outputPosition
}

// Next advances to the next chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *TabChunks) Next() bool {
	if it.input == nil {
		return false
	}

	for {
		if len(it.chunk.Text) == 0 {
			if !it.input.Next() {
				return false
			}
			raw := it.input.Chunk()
			it.chunk = Chunk{Text: raw.Text, Chars: raw.Chars, Tabs: raw.Tabs, Newlines: raw.Newlines}
			if it.insideLeadingTab {
				it.chunk = it.chunk.advance(1)
				it.insideLeadingTab = false
				it.inputColumn++
				continue
			}
		}

		firstTab := len(it.chunk.Text)
		if !it.chunk.Tabs.IsZero() {
			firstTab = it.chunk.Tabs.TrailingZeros()
		}

		if firstTab == 0 {
			it.chunk = it.chunk.advance(1)

			tabSize := it.tabSize
			if it.inputColumn >= it.maxExpansionColumn {
				tabSize = 1
			}
			n := tabSize - it.column%tabSize
			next := TabPoint{Row: it.outputPosition.Row, Column: it.outputPosition.Column + n}
			if next.Compare(it.maxOutputPosition) > 0 {
				next = it.maxOutputPosition
			}
			n = next.Column - it.outputPosition.Column
			it.column += n
			it.inputColumn++
			it.outputPosition = next
			if n == 0 {
				continue
			}

			it.current = Chunk{Text: spaces[:n], Chars: rope.BitmapOnes(int(n)), IsTab: true}
			return true
		}

		mask := rope.BitmapOnes(firstTab)
		prefix := Chunk{
			Text:     it.chunk.Text[:firstTab],
			Chars:    it.chunk.Chars.And(mask),
			Tabs:     it.chunk.Tabs.And(mask),
			Newlines: it.chunk.Newlines.And(mask),
			IsTab:    it.chunk.IsTab,
		}
		it.chunk = it.chunk.advance(firstTab)

		if newlines := prefix.Newlines.OnesCount(); newlines > 0 {
			afterLastNewline := 128 - prefix.Newlines.LeadingZeros()
			bytesAfter := uint32(firstTab - afterLastNewline)
			it.column = uint32(prefix.Chars.Shr(afterLastNewline).OnesCount())
			it.inputColumn = bytesAfter
			it.outputPosition = TabPoint{Row: it.outputPosition.Row + uint32(newlines), Column: bytesAfter}
		} else {
			it.column += uint32(prefix.Chars.OnesCount())
			if !it.insideLeadingTab {
				it.inputColumn += uint32(firstTab)
			}
			it.outputPosition.Column += uint32(firstTab)
		}

		it.current = prefix
		return true
	}
}

// Text returns the display text in [start, end).
func (s *TabSnapshot) Text(start, end TabPoint) string {
	var sb strings.Builder
	it := s.Chunks(start, end)
	for it.Next() {
		sb.WriteString(it.Chunk().Text)
	}
	return sb.String()
}
