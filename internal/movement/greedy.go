package movement

import (
	"unicode"

	"github.com/zakuhq/zaku/internal/display"
	"github.com/zakuhq/zaku/internal/engine/buffer"
	"github.com/zakuhq/zaku/internal/engine/rope"
)

// AdjustGreedyDeletion shortens a word deletion from deleteFrom to
// deleteUntil so that it does not swallow runs of two or more whitespace
// chars. A backward deletion stops at the start of the last run in the
// range and a forward deletion stops at the end of the first.
//
// ignoreBrackets is accepted for callers that thread it through; there is
// no bracket matching, so it has no effect.
func AdjustGreedyDeletion(m *display.Snapshot, deleteFrom, deleteUntil display.DisplayPoint, ignoreBrackets bool) display.DisplayPoint {
	if deleteFrom == deleteUntil {
		return deleteUntil
	}
	backward := deleteFrom.Compare(deleteUntil) > 0
	var from, until int
	if backward {
		from = m.DisplayPointToOffset(deleteFrom, rope.Right)
		until = m.DisplayPointToOffset(deleteUntil, rope.Left)
	} else {
		from = m.DisplayPointToOffset(deleteFrom, rope.Left)
		until = m.DisplayPointToOffset(deleteUntil, rope.Right)
	}
	offset := AdjustGreedyDeletionOffset(m.Buffer(), from, until, ignoreBrackets)
	return m.OffsetToDisplayPoint(offset, rope.Left)
}

// AdjustGreedyDeletionOffset is AdjustGreedyDeletion over buffer offsets.
func AdjustGreedyDeletionOffset(s *buffer.Snapshot, deleteFrom, deleteUntil int, ignoreBrackets bool) int {
	if deleteFrom == deleteUntil {
		return deleteUntil
	}
	backward := deleteFrom > deleteUntil
	start, end := deleteFrom, deleteUntil
	if backward {
		start, end = deleteUntil, deleteFrom
	}

	type run struct{ start, end int }
	var runs []run
	runStart, runLen := 0, 0
	for i, c := range s.TextForRange(start, end) {
		offset := start + i
		if unicode.IsSpace(c) {
			if runLen == 0 {
				runStart = offset
			}
			runLen++
			continue
		}
		if runLen >= 2 {
			runs = append(runs, run{runStart, offset})
		}
		runLen = 0
	}
	if runLen >= 2 {
		runs = append(runs, run{runStart, end})
	}

	switch {
	case len(runs) == 0 && backward:
		return start
	case len(runs) == 0:
		return end
	case backward:
		return runs[len(runs)-1].start
	default:
		return runs[0].end
	}
}
