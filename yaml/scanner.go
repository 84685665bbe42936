package yaml

import (
	"strings"
	"unicode"

	"simple_yaml_parser/util/parse"
	"simple_yaml_parser/util/scan"
)

// ExitSignalFunc is called for every leaf value with its key path. Returning true stops the scan.
//
// <path> is reused by the scanner and is valid only during the call.
type ExitSignalFunc func(path KeyPath, value Value) (exit bool)

// state represents scanner state
type state uint8

const (
	identifier state = iota
	value
	listItem
	multiline
	skip
)

// block represents block scalar being accumulated
type block struct {
	level    int // Nesting level of the key owning the block
	collapse bool
	preserve bool
}

// listMark remembers the list of the last emitted scalar item, which index key is popped right after the event
type listMark struct {
	set   bool
	level int // Nesting level of the "-"
	depth int // Key path length without the index
	next  int
}

// scanner represents single pass state machine over the input text
type scanner struct {
	in   string
	cb   ExitSignalFunc
	opts Options
	tab  int

	keys   KeyPath
	levels []int // Nesting level of every key of <keys>

	state     state
	start     int // Byte offset where pending text begins
	lineStart int // Byte offset of the current line
	indent    int // Indentation columns of the current line
	itemCol   int // Column of the "-" of the list item being assembled
	block     block
	mark      listMark
	exit      bool
}

// Parse calls <cb> for every leaf value in <input> using default options.
//
// If you want to return early (not parse the whole input) use ParseWithExitSignal.
//
// Can return ParseError.
func Parse(input string, cb func(path KeyPath, value Value)) error {
	return ParseWithExitSignal(input, func(path KeyPath, value Value) bool {
		cb(path, value)
		return false
	}, DefaultOptions())
}

// ParseWithExitSignal calls <cb> for every leaf value in <input> in document order until <cb> returns true.
//
// Strings in key paths and values are slices of <input>, nothing is copied.
//
// Returns nil if the whole input is scanned or <cb> asked to exit. Can return ParseError.
func ParseWithExitSignal(input string, cb ExitSignalFunc, opts Options) error {
	s := scanner{in: input, cb: cb, opts: opts, tab: opts.indentSize(), state: skip}
	return s.run()
}

// run feeds every character of the input to the current state handler
func (s *scanner) run() error {
	for idx, chr := range s.in {
		var err error
		switch s.state {
		case skip:
			s.skip(idx, chr)
		case identifier:
			err = s.identifier(idx, chr)
		case value:
			err = s.value(idx, chr)
		case listItem:
			err = s.listItem(idx, chr)
		case multiline:
			if chr == '\n' && s.blockEnds(idx) {
				s.endBlock(idx)
			}
		}
		if err != nil || s.exit {
			return err
		}
		if chr == '\n' {
			s.lineStart = idx + 1
			s.indent = 0
		}
	}
	return s.finish()
}

// finish flushes value left pending by input which does not end with a new line
func (s *scanner) finish() error {
	end := len(s.in)
	switch s.state {
	case identifier:
		if isBlank(s.in[s.start:end]) {
			return nil
		}
		return ParseError{At: end, Reason: ExpectedColon}
	case value:
		return s.endValue(end)
	case listItem:
		return s.endItem(end)
	case multiline:
		s.endBlock(end)
	}
	return nil
}

func (s *scanner) skip(idx int, chr rune) {
	switch {
	case chr == ' ':
		s.indent++
	case chr == '\t':
		s.indent += s.tab
	case chr == '-' && s.separated(idx+1):
		s.state = listItem
		s.itemCol = s.indent
		s.start = idx + 1
	case !unicode.IsSpace(chr):
		s.state = identifier
		s.start = idx
	}
}

func (s *scanner) identifier(idx int, chr rune) error {
	switch chr {
	case ':':
		if !s.separated(idx+1) || s.enclosed(s.start, idx) {
			return nil
		}
		level := s.level(s.indent)
		s.anchor(level)
		s.push(NamedKey(s.key(s.start, idx)), level)
		s.state = value
		s.start = idx + 1
	case '\n':
		if isBlank(s.in[s.start:idx]) {
			s.state = skip
			return nil
		}
		return ParseError{At: idx, Reason: ExpectedColon}
	}
	return nil
}

func (s *scanner) value(idx int, chr rune) error {
	switch {
	case chr == '-' && s.separated(idx+1) && isBlank(s.in[s.start:idx]):
		// Value is a list starting on the same line as the key
		s.state = listItem
		s.itemCol = s.column(idx)
		s.start = idx + 1
	case chr == '\n':
		return s.endValue(idx)
	}
	return nil
}

func (s *scanner) listItem(idx int, chr rune) error {
	switch {
	case chr == ':' && s.separated(idx+1) && !s.enclosed(s.start, idx):
		// List item is a mapping
		itemLevel := s.level(s.itemCol)
		s.push(IndexKey(s.ordinal(itemLevel)), itemLevel)
		lo, _ := s.trim(s.start, idx)
		// Key after "-" is always nested under the item
		s.push(NamedKey(s.key(s.start, idx)), max(s.level(s.column(lo)), itemLevel+1))
		s.state = value
		s.start = idx + 1
	case chr == '\n':
		return s.endItem(idx)
	}
	return nil
}

// endValue handles the end of a key line. <end> is the offset of the new line or the input length.
func (s *scanner) endValue(end int) error {
	s.state = skip
	lo, hi := s.trim(s.start, end)
	text := s.in[lo:hi]
	level := s.levels[len(s.levels)-1]

	switch {
	case text == "":
		// Nested mapping or list follows, the key stays in the path as a parent
		if s.opts.Strict && !s.nestedFollows(end, level, true) {
			return ParseError{At: end, Reason: ExpectedValue}
		}
		return nil
	case isBlockMarker(text):
		s.beginBlock(text, level, end)
		return nil
	case text[0] == '[':
		if err := s.flow(lo, hi); err != nil || s.exit {
			return err
		}
		s.pop()
		return nil
	}

	v, err := s.scalar(lo, hi)
	if err != nil {
		return err
	}
	s.emit(v)
	s.pop()
	return nil
}

// endItem handles the end of a "-" line which is not a mapping
func (s *scanner) endItem(end int) error {
	s.state = skip
	lo, hi := s.trim(s.start, end)
	text := s.in[lo:hi]
	level := s.level(s.itemCol)
	s.push(IndexKey(s.ordinal(level)), level)

	switch {
	case text == "":
		if s.nestedFollows(end, level, false) {
			// Item content starts on the next line, keep the index as a parent
			return nil
		}
		if s.opts.Strict {
			return ParseError{At: end, Reason: ExpectedValue}
		}
	case isBlockMarker(text):
		s.beginBlock(text, level, end)
		return nil
	case text[0] == '[':
		if err := s.flow(lo, hi); err != nil || s.exit {
			return err
		}
		s.pop()
		return nil
	}

	v, err := s.scalar(lo, hi)
	if err != nil {
		return err
	}
	s.emit(v)
	s.pop()
	return nil
}

// beginBlock switches to block scalar accumulation after the <marker> line ending at <end>
func (s *scanner) beginBlock(marker string, level int, end int) {
	s.block = block{level: level, collapse: marker[0] == '>', preserve: strings.HasSuffix(marker, "+")}
	s.state = multiline
	s.start = end + 1
	if s.blockEnds(end) {
		s.endBlock(end)
	}
}

// blockEnds returns true if the line after new line at <nl> is not blank and not indented more than the block owner.
//
// Blank lines never end a block.
func (s *scanner) blockEnds(nl int) bool {
	if nl >= len(s.in) {
		return true
	}
	sc := scan.New(s.in, nl+1)
	if !sc.Lines(false) {
		return true
	}
	if scan.IsBlank(sc.Line) {
		return false
	}
	return s.level(parse.Indent(sc.Line, s.tab)) <= s.block.level
}

// endBlock emits block scalar which body ends at <end>
func (s *scanner) endBlock(end int) {
	raw := ""
	if s.start < end {
		raw = strings.TrimSuffix(s.in[s.start:end], "\r")
	}
	s.state = skip
	s.emit(MultilineValue(Multiline{Raw: raw, Collapse: s.block.collapse, PreserveLeadingWhitespace: s.block.preserve}))
	s.pop()
}

// flow emits every item of "[a, b]" list in <lo>:<hi>. Keys of the items are removed after emitting.
func (s *scanner) flow(lo, hi int) error {
	ordinal := 0
	itemStart := lo + 1
	hasContent := false
	var quote byte

	for i := lo + 1; i < hi; i++ {
		c := s.in[i]
		switch {
		case quote != 0:
			if quote == '"' && c == '\\' {
				i++
			} else if c == quote {
				if quote == '\'' && i+1 < hi && s.in[i+1] == '\'' {
					i++
				} else {
					quote = 0
				}
			}
		case (c == '"' || c == '\'') && !hasContent:
			quote = c
			hasContent = true
		case c == '[':
			return ParseError{At: i, Reason: ExpectedBracket}
		case c == ',' || c == ']':
			itemLo, itemHi := s.trim(itemStart, i)
			if itemLo == itemHi {
				// Allow "[]" and trailing comma
				if c == ',' {
					return ParseError{At: i, Reason: ExpectedValue}
				}
			} else {
				v, err := s.scalar(itemLo, itemHi)
				if err != nil {
					return err
				}
				s.push(IndexKey(ordinal), -1)
				s.emit(v)
				s.cut(len(s.keys) - 1)
				if s.exit {
					return nil
				}
				ordinal++
			}
			if c == ']' {
				if restLo, restHi := s.trim(i+1, hi); restLo != restHi {
					return ParseError{At: restLo, Reason: ExpectedEndOfValue}
				}
				return nil
			}
			itemStart = i + 1
			hasContent = false
		case c != ' ' && c != '\t':
			hasContent = true
		}
	}

	return ParseError{At: hi, Reason: ExpectedBracket}
}

// scalar returns value of the trimmed text at <lo>:<hi>
func (s *scanner) scalar(lo, hi int) (Value, error) {
	text := s.in[lo:hi]
	if text == "" {
		return StringValue(text), nil
	}

	if text[0] == '"' || text[0] == '\'' {
		end := closingQuote(text)
		if end < 0 {
			return Value{}, ParseError{At: hi, Reason: ExpectedEndOfValue}
		}
		if end != len(text)-1 {
			restLo, _ := s.trim(lo+end+1, hi)
			return Value{}, ParseError{At: restLo, Reason: ExpectedEndOfValue}
		}
		return StringValue(text[1:end]), nil
	}

	switch text {
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	}
	if s.opts.Strict && text != "null" &&
		(strings.EqualFold(text, "true") || strings.EqualFold(text, "false") || strings.EqualFold(text, "null")) {
		return Value{}, ParseError{At: lo, Reason: ExpectedTrueFalseNull}
	}
	if s.opts.DetectNumbers && parse.IsNumber(text) {
		return NumberValue(text), nil
	}
	return StringValue(text), nil
}

// emit passes leaf <v> to the callback, remembering if it asked to exit
func (s *scanner) emit(v Value) {
	if s.cb(s.keys, v) {
		s.exit = true
	}
}

// push appends <key> at nesting <level> to the key path
func (s *scanner) push(key Key, level int) {
	s.keys = append(s.keys, key)
	s.levels = append(s.levels, level)
}

// pop removes key of the emitted leaf. Index key is remembered to continue numbering of its list.
func (s *scanner) pop() {
	last := len(s.keys) - 1
	if s.keys[last].Kind == Indexed {
		s.mark = listMark{set: true, level: s.levels[last], depth: last, next: s.keys[last].Index + 1}
	}
	s.cut(last)
}

// cut truncates key path to <n> keys
func (s *scanner) cut(n int) {
	s.keys = s.keys[:n]
	s.levels = s.levels[:n]
}

// level returns nesting level of a line indented by <col> columns
func (s *scanner) level(col int) int {
	return col / s.tab
}

// anchor returns to nesting <level> of a new key: key path keeps only keys above <level>
func (s *scanner) anchor(level int) {
	n := len(s.levels)
	for n > 0 && s.levels[n-1] >= level {
		n--
	}
	s.cut(n)
	if s.mark.set && s.mark.level >= level {
		s.mark.set = false
	}
}

// ordinal returns position of list item which "-" is at nesting <level>.
//
// Drops keys of the previous item of the same list and keys nested deeper than <level>.
func (s *scanner) ordinal(level int) int {
	n := len(s.levels)
	for n > 0 && s.levels[n-1] > level {
		n--
	}
	s.cut(n)
	if s.mark.set && s.mark.level > level {
		s.mark.set = false
	}

	if last := n - 1; last >= 0 && s.keys[last].Kind == Indexed && s.levels[last] == level {
		next := s.keys[last].Index + 1
		s.cut(last)
		return next
	}
	if s.mark.set && s.mark.level == level && s.mark.depth == n {
		s.mark.set = false
		return s.mark.next
	}
	return 0
}

// nestedFollows returns true if the first non-blank line after new line at <nl> is nested under a node at <level>.
//
// If <sameLevelList> is true, list item at the same level counts as nested too.
func (s *scanner) nestedFollows(nl int, level int, sameLevelList bool) bool {
	if nl >= len(s.in) {
		return false
	}
	sc := scan.New(s.in, nl+1)
	if !sc.Lines(true) {
		return false
	}
	lineLevel := s.level(parse.Indent(sc.Line, s.tab))
	if lineLevel > level {
		return true
	}
	rest := strings.TrimLeft(sc.Line, " \t")
	return sameLevelList && lineLevel == level && strings.HasPrefix(rest, "-") && (len(rest) == 1 || isSpace(rest[1]))
}

// key returns trimmed key text at <lo>:<hi> without surrounding quotes
func (s *scanner) key(lo, hi int) string {
	lo, hi = s.trim(lo, hi)
	text := s.in[lo:hi]
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		return text[1 : len(text)-1]
	}
	return text
}

// enclosed returns true if text at <lo>:<hi> begins with a quote or "[" which is not closed yet
func (s *scanner) enclosed(lo, hi int) bool {
	lo, hi = s.trim(lo, hi)
	if lo == hi {
		return false
	}
	switch s.in[lo] {
	case '"', '\'':
		return closingQuote(s.in[lo:hi]) < 0
	case '[':
		return !strings.Contains(s.in[lo:hi], "]")
	}
	return false
}

// column returns indentation columns before byte offset <idx> of the current line
func (s *scanner) column(idx int) int {
	col := 0
	for _, chr := range s.in[s.lineStart:idx] {
		if chr == '\t' {
			col += s.tab
		} else {
			col++
		}
	}
	return col
}

// separated returns true if byte at <idx> is whitespace or the input ends before it
func (s *scanner) separated(idx int) bool {
	return idx >= len(s.in) || isSpace(s.in[idx])
}

// trim returns <lo>:<hi> bounds without surrounding whitespace
func (s *scanner) trim(lo, hi int) (int, int) {
	if hi > len(s.in) {
		hi = len(s.in)
	}
	for lo < hi && isSpace(s.in[lo]) {
		lo++
	}
	for hi > lo && isSpace(s.in[hi-1]) {
		hi--
	}
	return lo, hi
}

// closingQuote returns index of the quote closing the one <text> starts with or -1 if it's not closed.
//
// Escapes are skipped, not processed: backslash in double quotes, doubled quote in single quotes.
func closingQuote(text string) int {
	quote := text[0]
	for i := 1; i < len(text); i++ {
		switch {
		case quote == '"' && text[i] == '\\':
			i++
		case text[i] == quote:
			if quote == '\'' && i+1 < len(text) && text[i+1] == '\'' {
				i++
				continue
			}
			return i
		}
	}
	return -1
}

// isBlockMarker returns true if <text> introduces a block scalar
func isBlockMarker(text string) bool {
	switch text {
	case "|", ">", "|+", ">+", "|-", ">-":
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isBlank(text string) bool {
	for i := 0; i < len(text); i++ {
		if !isSpace(text[i]) {
			return false
		}
	}
	return true
}
