package golisp

import "sort"

// lineIndex allows fast conversion from byte cursor offsets to
// one-based line numbers for syntax-error diagnostics (§4.5, §7).
//
// It stores the start byte offset of each line (0-based) and finds
// the line containing a cursor by binary-searching line starts
// (O(log lines)) rather than rescanning the whole buffer on every
// error. Construction is O(n) over the input and is done lazily, the
// first time a Reader needs to report a line number.
type lineIndex struct {
	lineStart []int
}

func newLineIndex(input []byte) *lineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &lineIndex{lineStart: lineStart}
}

// lineAt returns the one-based line number containing byte offset
// cursor.
func (li *lineIndex) lineAt(cursor int) int {
	if cursor < 0 {
		cursor = 0
	}
	idx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return idx + 1
}
