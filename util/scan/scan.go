package scan

import (
	"strings"
	"unicode/utf8"
)

// Scanner represents line scanner over a string. Lines are slices of the data, nothing is copied.
type Scanner struct {
	data         string
	Idx          int // Byte offset where the next line begins
	Line         string
	LineStartIdx int
	LineEndIdx   int // Byte offset right after the line terminator
	LineNum      int // Number of lines returned or skipped so far
}

// New returns new scanner for <data>, starting from the byte offset <startIdx>
func New(data string, startIdx int) *Scanner {
	if startIdx > len(data) {
		startIdx = len(data)
	}
	return &Scanner{data: data, Idx: startIdx}
}

// Lines returns true for every line of text in the data given to Scanner.
//
// If <skipBlank> is true, do not return true for lines consisting only of whitespace (/n, /r/n, spaces, tabs).
//
// Unlike bufio.Scanner, it does not trim /r, /n and space characters from line.
func (s *Scanner) Lines(skipBlank bool) bool {
	for s.Idx < len(s.data) {
		start := s.Idx
		end := len(s.data)
		if nl := strings.IndexByte(s.data[start:], '\n'); nl >= 0 {
			end = start + nl + 1
		}
		s.Idx = end
		s.Line = s.data[start:end]
		s.LineStartIdx = start
		s.LineEndIdx = end
		s.LineNum++
		if skipBlank && IsBlank(s.Line) {
			continue
		}
		return true
	}
	return false
}

// IsBlank returns true if <line> consists only of spaces, tabs and line terminators
func IsBlank(line string) bool {
	return strings.Trim(line, " \t\r\n") == ""
}

// Position represents human readable location of a byte offset
type Position struct {
	Line   int    // Starts from 1
	Column int    // Starts from 1, counted in characters
	Text   string // Line containing the offset, without line terminator
}

// Locate returns position of byte <offset> in <data>.
//
// Offset equal to the length of <data> points right after the last character.
func Locate(data string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}

	sc := New(data, 0)
	for sc.Lines(false) {
		if offset < sc.LineEndIdx || (offset == len(data) && !strings.HasSuffix(sc.Line, "\n")) {
			return Position{
				Line:   sc.LineNum,
				Column: utf8.RuneCountInString(data[sc.LineStartIdx:offset]) + 1,
				Text:   strings.TrimRight(sc.Line, "\r\n"),
			}
		}
	}
	// Empty data or offset after the trailing new line
	return Position{Line: sc.LineNum + 1, Column: 1}
}
