package rope

import (
	"strings"
	"unicode/utf8"
)

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded string stored in leaf nodes together with its summary.
// Chunks are immutable once created and never split a UTF-8 sequence.
type Chunk struct {
	text    string
	summary TextSummary
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{text: s, summary: ComputeSummary(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.text
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.text)
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.text) == 0
}

// Split splits a chunk at a byte offset.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.text) {
		return c, Chunk{}
	}
	return NewChunk(c.text[:offset]), NewChunk(c.text[offset:])
}

// splitIntoChunks cuts s into chunks of about TargetChunkSize bytes.
func splitIntoChunks(s string) []Chunk {
	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := chunkBoundary(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:cut]))
		s = s[cut:]
	}
	if s != "" {
		chunks = append(chunks, NewChunk(s))
	}
	return chunks
}

// chunkBoundary returns a cut point near target. A cut just after a
// newline within a quarter of MinChunkSize of target wins; otherwise the
// cut moves back to the nearest UTF-8 sequence start.
func chunkBoundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	slack := MinChunkSize / 4
	if i := strings.IndexByte(s[target:min(target+slack, len(s))], '\n'); i >= 0 {
		return target + i + 1
	}
	if i := strings.LastIndexByte(s[max(target-slack, 1):target], '\n'); i >= 0 {
		return max(target-slack, 1) + i + 1
	}
	cut := target
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return cut
}
