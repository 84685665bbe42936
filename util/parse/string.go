package parse

import (
	"regexp"
)

// numberRx represents regex matching decimal, float, hexadecimal and octal number literals
var numberRx = regexp.MustCompile(`^[-+]?(0x[0-9a-fA-F]+|0o[0-7]+|([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][-+]?[0-9]+)?)$`)

// Indent returns amount of indentation columns in the beginning of the <line>.
//
// Space counts as 1 column, tab as <tabSize> columns.
func Indent(line string, tabSize int) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			indent++
		case '\t':
			indent += tabSize
		default:
			return indent
		}
	}
	return indent
}

// IsNumber returns true if <text> is a number literal
func IsNumber(text string) bool {
	return numberRx.MatchString(text)
}
