package rope

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBitmap(t *testing.T) {
	var b Bitmap
	b = b.Set(3).Set(64).Set(127)
	if !b.Has(3) || !b.Has(64) || !b.Has(127) || b.Has(4) {
		t.Errorf("Has() mismatch for %+v", b)
	}
	if got := b.TrailingZeros(); got != 3 {
		t.Errorf("TrailingZeros() = %d, want 3", got)
	}
	if got := b.OnesCount(); got != 3 {
		t.Errorf("OnesCount() = %d, want 3", got)
	}
	if got := b.LeadingZeros(); got != 0 {
		t.Errorf("LeadingZeros() = %d, want 0", got)
	}
	if got := b.Shr(4).TrailingZeros(); got != 60 {
		t.Errorf("Shr(4).TrailingZeros() = %d, want 60", got)
	}
	if got := b.Shl(1).Has(65); !got {
		t.Error("Shl(1) should move bit 64 to 65")
	}
	if !b.Shr(128).IsZero() {
		t.Error("Shr(128) should be zero")
	}
	if got := b.ClearLowest().TrailingZeros(); got != 64 {
		t.Errorf("ClearLowest().TrailingZeros() = %d, want 64", got)
	}
	if got := BitmapOnes(70).OnesCount(); got != 70 {
		t.Errorf("BitmapOnes(70).OnesCount() = %d, want 70", got)
	}
	if got := b.And(BitmapOnes(64)); got.OnesCount() != 1 {
		t.Errorf("And(BitmapOnes(64)) = %+v", got)
	}
	if !new(Bitmap).IsZero() || (Bitmap{}).TrailingZeros() != 128 {
		t.Error("zero bitmap should report 128 trailing zeros")
	}
}

func TestRawChunks(t *testing.T) {
	text := strings.Repeat("a\tβ🌙x\n", 80)
	r := FromString(text)

	for _, rg := range [][2]int{{0, len(text)}, {2, 402}, {8, 9}} {
		var sb strings.Builder
		it := r.RawChunks(rg[0], rg[1])
		for it.Next() {
			c := it.Chunk()
			if len(c.Text) == 0 || len(c.Text) > RawChunkSize {
				t.Fatalf("chunk length %d out of bounds", len(c.Text))
			}
			if !utf8.ValidString(c.Text) {
				t.Fatalf("chunk splits a code point: %q", c.Text)
			}
			for i := 0; i < len(c.Text); i++ {
				if c.Chars.Has(i) != utf8.RuneStart(c.Text[i]) {
					t.Errorf("chars bit %d = %v for byte %q", i, c.Chars.Has(i), c.Text[i])
				}
				if c.Tabs.Has(i) != (c.Text[i] == '\t') {
					t.Errorf("tabs bit %d mismatch", i)
				}
				if c.Newlines.Has(i) != (c.Text[i] == '\n') {
					t.Errorf("newlines bit %d mismatch", i)
				}
			}
			if c.Tabs.AndNot(c.Chars).OnesCount() != 0 || c.Newlines.AndNot(c.Chars).OnesCount() != 0 {
				t.Error("tabs and newlines must be subsets of chars")
			}
			if it.Offset() != rg[0]+sb.Len() {
				t.Errorf("Offset() = %d, want %d", it.Offset(), rg[0]+sb.Len())
			}
			sb.WriteString(c.Text)
		}
		if sb.String() != text[rg[0]:rg[1]] {
			t.Errorf("RawChunks(%d, %d) concatenation mismatch", rg[0], rg[1])
		}
	}
}
