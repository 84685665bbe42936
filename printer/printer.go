package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/SCP002/jsonexraw"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"simple_yaml_parser/batch"
	"simple_yaml_parser/cfg"
	"simple_yaml_parser/util/logger"
	"simple_yaml_parser/util/scan"
	"simple_yaml_parser/util/tw"
	"simple_yaml_parser/yaml"
)

// repo represents dependencies holder for this package
type repo struct {
	log *logger.Logger
	tw  tw.Writer
	cfg cfg.Root
	out io.Writer
}

// NewRepo returns new dependencies holder for this package.
//
// Text and JSON output is written to <out>, table output is written by <tw>.
func NewRepo(log *logger.Logger, tw tw.Writer, cfg cfg.Root, out io.Writer) repo {
	return repo{log: log, tw: tw, cfg: cfg, out: out}
}

// Log used to satisfy deps.Global interface
func (r repo) Log() *logger.Logger {
	return r.log
}

// Cfg used to satisfy deps.Global interface
func (r repo) Cfg() cfg.Root {
	return r.cfg
}

// Print writes <results> in format defined by output.format setting
func (r repo) Print(results []batch.Result) error {
	r.log.DebugFi("Printing results", "format", r.cfg.Output.Format, "documents", len(results))
	switch r.cfg.Output.Format {
	case cfg.JSON:
		return r.printJSON(results)
	case cfg.Table:
		r.printTable(results)
		return nil
	default:
		return r.printText(results)
	}
}

// ErrorText returns description of <res> error in format of "name:line:col: reason" followed by the offending line and
// a caret under the offending character if error is yaml.ParseError.
//
// Returns empty string if <res> has no error.
func ErrorText(res batch.Result) string {
	if res.Err == nil {
		return ""
	}
	var parseErr yaml.ParseError
	if !errors.As(res.Err, &parseErr) {
		return fmt.Sprintf("%v: %v", res.Doc.Name, res.Err)
	}
	pos := scan.Locate(res.Doc.Text, parseErr.At)
	return fmt.Sprintf("%v:%v:%v: %v\n  %v\n  %v^", res.Doc.Name, pos.Line, pos.Column, parseErr.Reason.Description(),
		pos.Text, caretPad(pos.Text, pos.Column))
}

// caretPad returns padding which puts caret under rune <column> of <line>. Tabs of <line> are kept, so the caret
// lines up with the line regardless of tab width.
func caretPad(line string, column int) string {
	var sb strings.Builder
	n := 0
	for _, chr := range line {
		if n == column-1 {
			break
		}
		if chr == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
		n++
	}
	sb.WriteString(strings.Repeat(" ", max(column-1-n, 0)))
	return sb.String()
}

// valueText returns <v> as printed, block scalars are rendered if output.render_multiline setting is on
func (r repo) valueText(v yaml.Value) string {
	if v.Kind == yaml.MultilineString && !r.cfg.Output.RenderMultiline {
		return v.Block.Raw
	}
	return v.String()
}

// printText writes <results> as colored "path: value" lines
func (r repo) printText(results []batch.Result) error {
	newColor := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if !r.cfg.Output.Color {
			c.DisableColor()
		}
		return c
	}
	header := newColor(color.FgCyan, color.Bold)
	key := newColor(color.FgBlue)
	kindColors := map[yaml.ValueKind]*color.Color{
		yaml.PlainString:     newColor(color.FgGreen),
		yaml.MultilineString: newColor(color.FgGreen),
		yaml.Number:          newColor(color.FgYellow),
		yaml.True:            newColor(color.FgMagenta),
		yaml.False:           newColor(color.FgMagenta),
	}
	failure := newColor(color.FgRed)

	var sb strings.Builder
	for idx, res := range results {
		if len(results) > 1 {
			if idx > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(header.Sprintf("# %v", res.Doc.Name) + "\n")
		}
		for _, e := range res.Events {
			val := r.valueText(e.Value)
			if strings.Contains(val, "\n") {
				lines := strings.Split(val, "\n")
				val = "|\n" + strings.Join(lo.Map(lines, func(line string, _ int) string {
					return "  " + line
				}), "\n")
			}
			sb.WriteString(key.Sprint(e.Path.String()) + ": " + kindColors[e.Value.Kind].Sprint(val) + "\n")
		}
		if res.Failed() {
			sb.WriteString(failure.Sprint(ErrorText(res)) + "\n")
		}
	}

	_, err := io.WriteString(r.out, sb.String())
	return errors.Wrap(err, "Write text output")
}

// jsonDocument represents JSON output of one document
type jsonDocument struct {
	Name        string      `json:"name"`
	Values      []jsonValue `json:"values"`
	Error       *jsonError  `json:"error,omitempty"`
	Truncated   bool        `json:"truncated,omitempty"`
	Interrupted bool        `json:"interrupted,omitempty"`
}

// jsonValue represents JSON output of one event
type jsonValue struct {
	Path  []any  `json:"path"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// jsonError represents JSON output of document error
type jsonError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// printJSON writes <results> as indented JSON array
func (r repo) printJSON(results []batch.Result) error {
	docs := lo.Map(results, func(res batch.Result, _ int) jsonDocument {
		doc := jsonDocument{
			Name:        res.Doc.Name,
			Values:      make([]jsonValue, 0, len(res.Events)),
			Truncated:   res.Truncated,
			Interrupted: res.Interrupted,
		}
		for _, e := range res.Events {
			path := lo.Map(e.Path, func(k yaml.Key, _ int) any {
				return lo.Ternary[any](k.Kind == yaml.Indexed, k.Index, k.Name)
			})
			var val any = r.valueText(e.Value)
			if e.Value.Kind == yaml.True || e.Value.Kind == yaml.False {
				val = e.Value.Kind == yaml.True
			}
			doc.Values = append(doc.Values, jsonValue{Path: path, Kind: e.Value.Kind.String(), Value: val})
		}
		if res.Failed() {
			doc.Error = &jsonError{Message: res.Err.Error()}
			var parseErr yaml.ParseError
			if errors.As(res.Err, &parseErr) {
				pos := scan.Locate(res.Doc.Text, parseErr.At)
				doc.Error.Message = parseErr.Reason.Description()
				doc.Error.Line, doc.Error.Column = pos.Line, pos.Column
			}
		}
		return doc
	})

	out, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Marshal JSON output")
	}
	_, err = r.out.Write(append(out, '\n'))
	return errors.Wrap(err, "Write JSON output")
}

// printTable writes values of <results> as table followed by table of errors if any
func (r repo) printTable(results []batch.Result) {
	r.tw.AppendHeader(table.Row{"Document", "Path", "Kind", "Value"})
	for _, res := range results {
		for _, e := range res.Events {
			r.tw.AppendRow(table.Row{res.Doc.Name, e.Path.String(), e.Value.Kind.String(), r.valueText(e.Value)})
		}
	}
	total := lo.SumBy(results, func(res batch.Result) int { return len(res.Events) })
	r.tw.AppendFooter(table.Row{"", "", "Total", strconv.Itoa(total)})
	r.tw.Render()

	failed := lo.Filter(results, func(res batch.Result, _ int) bool { return res.Failed() })
	if len(failed) == 0 {
		return
	}
	r.tw.AppendHeader(table.Row{"Document", "Position", "Reason"})
	for _, res := range failed {
		position, reason := "", res.Err.Error()
		var parseErr yaml.ParseError
		if errors.As(res.Err, &parseErr) {
			pos := scan.Locate(res.Doc.Text, parseErr.At)
			position = fmt.Sprintf("%v:%v", pos.Line, pos.Column)
			reason = parseErr.Reason.Description()
		}
		r.tw.AppendRow(table.Row{res.Doc.Name, position, reason})
	}
	r.tw.Render()
}
