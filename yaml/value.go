package yaml

import (
	"strings"

	"simple_yaml_parser/util/parse"
)

// ValueKind represents the kind of an emitted leaf value
type ValueKind uint8

const (
	PlainString ValueKind = iota
	MultilineString
	Number
	True
	False
)

// String is used to satisfy fmt.Stringer interface
func (k ValueKind) String() string {
	switch k {
	case PlainString:
		return "String"
	case MultilineString:
		return "MultilineString"
	case Number:
		return "Number"
	case True:
		return "True"
	case False:
		return "False"
	}
	return "Unknown"
}

// Multiline represents a block scalar introduced by "|" or ">".
//
// Raw is the un-dedented body, a slice of the scanned input.
type Multiline struct {
	Raw string
	// Replace new lines with spaces. Set by ">".
	Collapse bool
	// Keep indentation of the body lines. Set by "|+" and ">+".
	PreserveLeadingWhitespace bool
}

// Value represents a leaf value. Text and Block.Raw never own memory, they are slices of the scanned input.
type Value struct {
	Kind  ValueKind
	Text  string    // PlainString and Number payload
	Block Multiline // MultilineString payload
}

// StringValue returns PlainString value of <text>
func StringValue(text string) Value {
	return Value{Kind: PlainString, Text: text}
}

// NumberValue returns Number value of <text>
func NumberValue(text string) Value {
	return Value{Kind: Number, Text: text}
}

// BoolValue returns True or False value
func BoolValue(b bool) Value {
	if b {
		return Value{Kind: True}
	}
	return Value{Kind: False}
}

// MultilineValue returns MultilineString value of <block>
func MultilineValue(block Multiline) Value {
	return Value{Kind: MultilineString, Block: block}
}

// String returns text representation of the value. Block scalars are rendered with Multiline.Text().
func (v Value) String() string {
	switch v.Kind {
	case True:
		return "true"
	case False:
		return "false"
	case MultilineString:
		return v.Block.Text()
	default:
		return v.Text
	}
}

// Text returns content of the block.
//
// Common indentation is removed unless PreserveLeadingWhitespace is set, trailing blank lines are dropped and, if
// Collapse is set, lines are folded: adjacent lines are joined with a space and blank lines become line breaks.
func (m Multiline) Text() string {
	lines := strings.Split(strings.ReplaceAll(m.Raw, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	if !m.PreserveLeadingWhitespace {
		common := -1
		for _, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if indent := parse.Indent(line, 1); common < 0 || indent < common {
				common = indent
			}
		}
		for i, line := range lines {
			if len(line) >= common {
				lines[i] = line[common:]
			} else {
				lines[i] = ""
			}
		}
	}

	if !m.Collapse {
		return strings.Join(lines, "\n")
	}

	var sb strings.Builder
	prevBlank := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			sb.WriteByte('\n')
			prevBlank = true
			continue
		}
		if !prevBlank {
			sb.WriteByte(' ')
		}
		sb.WriteString(line)
		prevBlank = false
	}
	return sb.String()
}
