package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzReplace tests replace operations.
func FuzzReplace(f *testing.F) {
	f.Add("hello world", 0, 5, "hi")
	f.Add("hello world", 6, 11, "universe")
	f.Add("abcdef", 2, 4, "XYZ")
	f.Add("日本語", 3, 3, "\t")

	f.Fuzz(func(t *testing.T, initial string, start, end int, replacement string) {
		if !utf8.ValidString(initial) || !utf8.ValidString(replacement) {
			return
		}

		r := FromString(initial)
		start = r.ClipOffset(start, Left)
		end = r.ClipOffset(max(end, start), Right)

		result := r.Replace(start, end, replacement)
		expected := initial[:start] + replacement + initial[end:]
		if result.String() != expected {
			t.Errorf("replace mismatch: range [%d, %d)", start, end)
		}
		if result.Summary() != ComputeSummary(expected) {
			t.Errorf("summary mismatch after replace")
		}
	})
}

// FuzzSplit tests split operations.
func FuzzSplit(f *testing.F) {
	f.Add("hello world", 0)
	f.Add("hello world", 5)
	f.Add("日本語", 3)

	f.Fuzz(func(t *testing.T, s string, offset int) {
		if !utf8.ValidString(s) {
			return
		}

		r := FromString(s)
		offset = r.ClipOffset(offset, Left)
		left, right := r.Split(offset)
		if left.String() != s[:offset] || right.String() != s[offset:] {
			t.Errorf("split mismatch at offset %d", offset)
		}
		if left.Concat(right).String() != s {
			t.Errorf("split+concat does not reproduce original")
		}
	})
}

// FuzzOffsetToPoint tests coordinate conversion.
func FuzzOffsetToPoint(f *testing.F) {
	f.Add("line1\nline2\nline3", 6)
	f.Add("a🏀\nβ", 5)

	f.Fuzz(func(t *testing.T, s string, offset int) {
		if !utf8.ValidString(s) {
			return
		}

		r := FromString(s)
		offset = r.ClipOffset(offset, Left)
		point := r.OffsetToPoint(offset)
		if point.Row > r.MaxPoint().Row {
			t.Errorf("row %d past max row %d", point.Row, r.MaxPoint().Row)
		}
		if back := r.PointToOffset(point); back != offset {
			t.Errorf("PointToOffset(OffsetToPoint(%d)) = %d", offset, back)
		}
		if back := r.OffsetUTF16ToOffset(r.OffsetToOffsetUTF16(offset)); back != offset {
			t.Errorf("UTF-16 round trip of %d = %d", offset, back)
		}
	})
}

// FuzzRawChunks tests that raw chunks reassemble the text.
func FuzzRawChunks(f *testing.F) {
	f.Add(strings.Repeat("a\tb\n", 70))
	f.Add("🌙\t\tα\nβ\t\n🏀β\t\tγ")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}

		var sb strings.Builder
		it := FromString(s).RawChunks(0, len(s))
		for it.Next() {
			c := it.Chunk()
			if len(c.Text) == 0 || len(c.Text) > RawChunkSize {
				t.Fatalf("bad chunk length %d", len(c.Text))
			}
			sb.WriteString(c.Text)
		}
		if sb.String() != s {
			t.Error("raw chunks do not reassemble the text")
		}
	})
}
