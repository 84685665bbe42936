package yaml

import (
	"fmt"
	"strings"
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple_yaml_parser/util/copier"
)

const sample = `person:
  name: John Doe
  description: |
    something here
    that spans multiple lines
  age: 30
  something:
    x: true
  address:
    street: 123 Main St
    city: Example City
places:
  list: ["something", "here"]
  inner:
    x: string
`

// path returns key path built from strings (Named) and integers (Indexed)
func path(keys ...any) KeyPath {
	out := KeyPath{}
	for _, k := range keys {
		switch k := k.(type) {
		case string:
			out = append(out, NamedKey(k))
		case int:
			out = append(out, IndexKey(k))
		}
	}
	return out
}

func ev(v Value, keys ...any) Event {
	return Event{Path: path(keys...), Value: v}
}

func str(text string, keys ...any) Event {
	return ev(StringValue(text), keys...)
}

// collect returns events of <input>, failing the test on error
func collect(t *testing.T, input string, opts Options) []Event {
	t.Helper()
	events, err := Collect(input, opts)
	require.NoError(t, err, "should scan input:\n%v", input)
	return events
}

func assertEvents(t *testing.T, expected []Event, actual []Event) {
	t.Helper()
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("events mismatch (-expected +actual):\n%v", diff)
	}
}

func TestParseSample(t *testing.T) {
	expected := []Event{
		str("John Doe", "person", "name"),
		ev(MultilineValue(Multiline{Raw: "    something here\n    that spans multiple lines"}), "person", "description"),
		str("30", "person", "age"),
		ev(BoolValue(true), "person", "something", "x"),
		str("123 Main St", "person", "address", "street"),
		str("Example City", "person", "address", "city"),
		str("something", "places", "list", 0),
		str("here", "places", "list", 1),
		str("string", "places", "inner", "x"),
	}
	assertEvents(t, expected, collect(t, sample, DefaultOptions()))

	var actual []string
	err := Parse(sample, func(path KeyPath, value Value) {
		actual = append(actual, path.String()+"="+value.String())
	})
	assert.NoError(t, err, "should not return error")
	assert.Exactly(t, []string{
		"person.name=John Doe",
		"person.description=something here\nthat spans multiple lines",
		"person.age=30",
		"person.something.x=true",
		"person.address.street=123 Main St",
		"person.address.city=Example City",
		"places.list[0]=something",
		"places.list[1]=here",
		"places.inner.x=string",
	}, actual, "simple entry point should emit the same events")
}

func TestRootMapping(t *testing.T) {
	input := "a: 1\nb: true\nc: false\nd:   spaced text  \ne:b: c\n"
	expected := []Event{
		str("1", "a"),
		ev(BoolValue(true), "b"),
		ev(BoolValue(false), "c"),
		str("spaced text", "d"),
		str("c", "e:b"),
	}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))

	// Generated root mappings
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "key_%v: value %v\n", i, i)
	}
	for i, e := range collect(t, sb.String(), DefaultOptions()) {
		assert.Exactly(t, path(fmt.Sprintf("key_%v", i)), e.Path, "should have single named key")
		assert.Exactly(t, StringValue(fmt.Sprintf("value %v", i)), e.Value, "should have trimmed scalar value")
	}
}

func TestNestedMappings(t *testing.T) {
	for indentSize := 1; indentSize <= 4; indentSize++ {
		indent := strings.Repeat(" ", indentSize)
		input := "a:\n" +
			indent + "b:\n" +
			indent + indent + "c: deep\n" +
			indent + "d: shallow\n" +
			"e:\n" +
			indent + "f: again\n"
		expected := []Event{
			str("deep", "a", "b", "c"),
			str("shallow", "a", "d"),
			str("again", "e", "f"),
		}
		actual := collect(t, input, Options{IndentSize: indentSize})
		assertEvents(t, expected, actual)

		depths := []int{3, 2, 2}
		for i, e := range actual {
			assert.Exactly(t, depths[i], e.Path.Named(), "named keys should match nesting depth")
		}
	}
}

func TestDedent(t *testing.T) {
	input := "a:\n  b: 1\nc: 2\n"
	assertEvents(t, []Event{str("1", "a", "b"), str("2", "c")}, collect(t, input, DefaultOptions()))

	// Two spaces are level 0 when a level is four columns wide
	assertEvents(t, []Event{str("1", "b"), str("2", "c")}, collect(t, input, Options{IndentSize: 4}))

	input = "a:\n    b:\n        c: 1\n      d: 2\n  e: 3\n"
	expected := []Event{str("1", "a", "b", "c"), str("2", "a", "d"), str("3", "e")}
	assertEvents(t, expected, collect(t, input, Options{IndentSize: 4}))
}

func TestEmptyAndBlankInput(t *testing.T) {
	for _, input := range []string{"", "\n", "  \n", "\n\n", " \t \r\n\n  "} {
		events, err := Collect(input, DefaultOptions())
		assert.NoError(t, err, "should accept blank input %q", input)
		assert.Empty(t, events, "should emit nothing for blank input %q", input)
	}

	assertEvents(t, []Event{str("1", "a")}, collect(t, "\na: 1\n", DefaultOptions()))
	assertEvents(t, []Event{str("1", "a"), str("2", "b")}, collect(t, "\n  \na: 1\n\n\nb: 2\n\n", DefaultOptions()))
	assertEvents(t, []Event{str("x", 0)}, collect(t, "- x\n", DefaultOptions()))
	assertEvents(t, []Event{str("x", 0), str("y", 1)}, collect(t, "\n- x\n\n- y\n", DefaultOptions()))
}

func TestTabs(t *testing.T) {
	input := "a:\n\tb:\n\t\tc: 1\n\td: 2\n"
	expected := []Event{str("1", "a", "b", "c"), str("2", "a", "d")}
	assertEvents(t, expected, collect(t, input, Options{IndentSize: 4}))
	assertEvents(t, expected, collect(t, input, DefaultOptions()))
}

func TestCRLF(t *testing.T) {
	input := "a: 1\r\nb:\r\n  c: 2\r\nd: |\r\n  x\r\ne: 3\r\n"
	expected := []Event{
		str("1", "a"),
		str("2", "b", "c"),
		ev(MultilineValue(Multiline{Raw: "  x"}), "d"),
		str("3", "e"),
	}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))
}

func TestBlockList(t *testing.T) {
	input := `list:
  - a
  - b

other:
  - c
unindented:
- d
- e
`
	expected := []Event{
		str("a", "list", 0),
		str("b", "list", 1),
		str("c", "other", 0),
		str("d", "unindented", 0),
		str("e", "unindented", 1),
	}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))

	input = "- x\n- y\n- z"
	expected = []Event{str("x", 0), str("y", 1), str("z", 2)}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))
}

func TestMappingItems(t *testing.T) {
	input := `items:
  - name: x
    size: 1
  - name: y
    tags:
      - t1
      - t2
  -
    name: z
after: end
`
	expected := []Event{
		str("x", "items", 0, "name"),
		str("1", "items", 0, "size"),
		str("y", "items", 1, "name"),
		str("t1", "items", 1, "tags", 0),
		str("t2", "items", 1, "tags", 1),
		str("z", "items", 2, "name"),
		str("end", "after"),
	}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))
}

func TestNestedLists(t *testing.T) {
	input := `x:
  - a:
      - 1
      - 2
    b: 3
  - c
  - d: 4
  - e
y:
  - f
`
	expected := []Event{
		str("1", "x", 0, "a", 0),
		str("2", "x", 0, "a", 1),
		str("3", "x", 0, "b"),
		str("c", "x", 1),
		str("4", "x", 2, "d"),
		str("e", "x", 3),
		str("f", "y", 0),
	}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))
}

func TestInlineListMarker(t *testing.T) {
	input := "a: - x\nb: -5\nc: - \n"
	expected := []Event{
		str("x", "a", 0),
		str("-5", "b"),
		str("", "c", 0),
	}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))
}

func TestFlowList(t *testing.T) {
	input := `list: [a, 'b c', "d, e", 'it''s']
empty: []
trail: [x,]
items:
  - [1, 2]
  - [3]
`
	expected := []Event{
		str("a", "list", 0),
		str("b c", "list", 1),
		str("d, e", "list", 2),
		str("it''s", "list", 3),
		str("x", "trail", 0),
		str("1", "items", 0, 0),
		str("2", "items", 0, 1),
		str("3", "items", 1, 0),
	}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))
}

func TestMultiline(t *testing.T) {
	input := `a: |
  one

  two
b: >
  folded
  text
c:
  d: |-
    nested
  e: 1
f: |+
    kept
`
	expected := []Event{
		ev(MultilineValue(Multiline{Raw: "  one\n\n  two"}), "a"),
		ev(MultilineValue(Multiline{Raw: "  folded\n  text", Collapse: true}), "b"),
		ev(MultilineValue(Multiline{Raw: "    nested"}), "c", "d"),
		str("1", "c", "e"),
		ev(MultilineValue(Multiline{Raw: "    kept", PreserveLeadingWhitespace: true}), "f"),
	}
	actual := collect(t, input, DefaultOptions())
	assertEvents(t, expected, actual)

	assert.Exactly(t, "one\n\ntwo", actual[0].Value.String(), "should dedent literal block")
	assert.Exactly(t, "folded text", actual[1].Value.String(), "should fold block")
	assert.Exactly(t, "    kept", actual[4].Value.String(), "should keep indentation")
}

func TestMultilineEdges(t *testing.T) {
	// Empty block
	expected := []Event{ev(MultilineValue(Multiline{}), "a"), str("1", "b")}
	assertEvents(t, expected, collect(t, "a: |\nb: 1\n", DefaultOptions()))

	// Block list item
	expected = []Event{ev(MultilineValue(Multiline{Raw: "  x"}), 0), str("y", 1)}
	assertEvents(t, expected, collect(t, "- |\n  x\n- y", DefaultOptions()))

	// Trailing blank lines belong to the block
	expected = []Event{ev(MultilineValue(Multiline{Raw: "  x\n"}), "a"), str("1", "b")}
	assertEvents(t, expected, collect(t, "a: |\n  x\n\nb: 1\n", DefaultOptions()))

	// Block ended by the end of input
	expected = []Event{ev(MultilineValue(Multiline{Raw: "  x\n  y"}), "a")}
	assertEvents(t, expected, collect(t, "a: |\n  x\n  y", DefaultOptions()))
	assertEvents(t, expected, collect(t, "a: |\n  x\n  y\n", DefaultOptions()))
}

func TestTrailingValue(t *testing.T) {
	assertEvents(t, []Event{str("1", "a")}, collect(t, "a: 1", DefaultOptions()))
	assertEvents(t, []Event{str("x", 0)}, collect(t, "- x", DefaultOptions()))
	assertEvents(t, []Event{str("y", "a", 0)}, collect(t, "a: [y]", DefaultOptions()))
	assertEvents(t, nil, collect(t, "a:", DefaultOptions()))
	assertEvents(t, nil, collect(t, "", DefaultOptions()))
	assertEvents(t, nil, collect(t, "\n  \n", DefaultOptions()))
}

func TestQuotes(t *testing.T) {
	input := `a: "true"
b: 'it''s'
"quoted key": v
url: http://host:80/path
esc: "say \"hi\""
it's: fine
`
	expected := []Event{
		str("true", "a"),
		str("it''s", "b"),
		str("v", "quoted key"),
		str("http://host:80/path", "url"),
		str(`say \"hi\"`, "esc"),
		str("fine", "it's"),
	}
	assertEvents(t, expected, collect(t, input, DefaultOptions()))
}

func TestNumbers(t *testing.T) {
	input := "a: 30\nb: -2.5\nc: 0x1F\nd: 30 seconds\ne: '30'\nf: [1, x]\n"

	expected := []Event{
		ev(NumberValue("30"), "a"),
		ev(NumberValue("-2.5"), "b"),
		ev(NumberValue("0x1F"), "c"),
		str("30 seconds", "d"),
		str("30", "e"),
		ev(NumberValue("1"), "f", 0),
		str("x", "f", 1),
	}
	assertEvents(t, expected, collect(t, input, Options{DetectNumbers: true}))

	for _, e := range collect(t, input, DefaultOptions()) {
		assert.Exactly(t, PlainString, e.Value.Kind, "should not detect numbers by default")
	}
}

func TestStrict(t *testing.T) {
	strict := Options{Strict: true}

	// Valid documents stay valid
	_, err := Collect(sample, strict)
	assert.NoError(t, err, "should accept sample document")
	_, err = Collect("a:\n- 1\n", strict)
	assert.NoError(t, err, "should accept unindented list")
	_, err = Collect("a: null\n", strict)
	assert.NoError(t, err, "should accept lowercase null as a string")

	// Keys without values
	assertEvents(t, []Event{str("1", "b")}, collect(t, "a:\nb: 1\n", DefaultOptions()))
	_, err = Collect("a:\nb: 1\n", strict)
	assert.Exactly(t, ParseError{At: 2, Reason: ExpectedValue}, err, "should require value")
	_, err = Collect("a:", strict)
	assert.Exactly(t, ParseError{At: 2, Reason: ExpectedValue}, err, "should require value at the end of input")

	assertEvents(t, []Event{str("", 0)}, collect(t, "-\n", DefaultOptions()))
	_, err = Collect("-\n", strict)
	assert.Exactly(t, ParseError{At: 1, Reason: ExpectedValue}, err, "should require list item value")

	// Literals
	assertEvents(t, []Event{str("True", "a")}, collect(t, "a: True\n", DefaultOptions()))
	for _, literal := range []string{"True", "FALSE", "Null", "NULL"} {
		_, err = Collect("a: "+literal+"\n", strict)
		assert.Exactly(t, ParseError{At: 3, Reason: ExpectedTrueFalseNull}, err, "should reject %v", literal)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected ParseError
		events   int
	}{
		{input: "a: 1\nbad\n", expected: ParseError{At: 8, Reason: ExpectedColon}, events: 1},
		{input: "a: 1\nbad", expected: ParseError{At: 8, Reason: ExpectedColon}, events: 1},
		{input: `a: "x`, expected: ParseError{At: 5, Reason: ExpectedEndOfValue}},
		{input: "a: \"x\" y\n", expected: ParseError{At: 7, Reason: ExpectedEndOfValue}},
		{input: "a: [x, y\n", expected: ParseError{At: 8, Reason: ExpectedBracket}, events: 1},
		{input: "a: [x] y\n", expected: ParseError{At: 7, Reason: ExpectedEndOfValue}, events: 1},
		{input: "a: [[x]]\n", expected: ParseError{At: 4, Reason: ExpectedBracket}},
		{input: "a: [x,,y]\n", expected: ParseError{At: 6, Reason: ExpectedValue}, events: 1},
		{input: "a:1\n", expected: ParseError{At: 3, Reason: ExpectedColon}},
		{input: "b: 2\na:1", expected: ParseError{At: 9, Reason: ExpectedColon}, events: 1},
	}
	for _, test := range tests {
		events, err := Collect(test.input, DefaultOptions())
		assert.Exactly(t, test.expected, err, "should return error for %q", test.input)
		assert.Len(t, events, test.events, "should emit events before the error for %q", test.input)

		parseErr := ParseError{}
		assert.True(t, errors.As(errors.Wrap(err, "scan"), &parseErr), "should unwrap to ParseError")
		assert.Exactly(t, test.expected, parseErr)
	}

	_, err := Collect("a:1\n", Options{Strict: true})
	assert.Exactly(t, ParseError{At: 3, Reason: ExpectedColon}, err, "should require space after colon in strict mode")

	assert.Exactly(t, "YAMLParseError: ExpectedColon at 8", ParseError{At: 8, Reason: ExpectedColon}.Error())
	assert.Exactly(t, "expected ':' after key", ExpectedColon.Description())
}

func TestExitSignal(t *testing.T) {
	all := collect(t, sample, DefaultOptions())

	for k := 1; k <= len(all); k++ {
		var seen []Event
		err := ParseWithExitSignal(sample, func(path KeyPath, value Value) bool {
			seen = append(seen, Event{Path: append(KeyPath{}, path...), Value: value})
			return len(seen) == k
		}, DefaultOptions())
		assert.NoError(t, err, "should report success on exit")
		assertEvents(t, all[:k], seen)
	}

	// Exit in the middle of a flow list
	calls := 0
	err := ParseWithExitSignal("a: [1, 2, 3]\nb: 4\n", func(path KeyPath, value Value) bool {
		calls++
		return true
	}, DefaultOptions())
	assert.NoError(t, err, "should report success on exit")
	assert.Exactly(t, 1, calls, "should not call back after exit")
}

func TestIdempotence(t *testing.T) {
	first := collect(t, sample, DefaultOptions())
	snapshot := copier.TDeep(t, first)

	second := collect(t, sample, DefaultOptions())
	assertEvents(t, snapshot, second)
	assertEvents(t, first, second)
}

func TestPathReuse(t *testing.T) {
	var paths []KeyPath
	err := Parse("a:\n  b: 1\n  c: 2\n", func(path KeyPath, value Value) {
		paths = append(paths, path)
	})
	assert.NoError(t, err, "should not return error")
	// Retained views alias scanner storage, so the earlier path now shows the later key
	assert.Exactly(t, "a.c", paths[0].String(), "path should be reused between events")
	assert.Exactly(t, "a.c", paths[1].String())
}

func TestZeroCopy(t *testing.T) {
	input := "key: value\nblock: |\n  body\n"
	events := collect(t, input, DefaultOptions())

	assert.Same(t, unsafe.StringData(input), unsafe.StringData(events[0].Path[0].Name), "key should be slice of input")
	assert.Same(t, unsafe.StringData(input[5:]), unsafe.StringData(events[0].Value.Text), "value should be slice of input")
	assert.Same(t, unsafe.StringData(input[20:]), unsafe.StringData(events[1].Value.Block.Raw),
		"block should be slice of input")
}
