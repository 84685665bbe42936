package yaml

// DefaultIndentSize is the amount of indentation columns of one nesting level used if Options.IndentSize is not set
const DefaultIndentSize = 2

// Options represents scanner settings
type Options struct {
	// IndentSize is the amount of columns forming one nesting level. Tab counts as IndentSize columns, space as 1.
	IndentSize int

	// Strict enables errors for keys without value and for capitalized true / false / null literals
	Strict bool

	// DetectNumbers makes unquoted numeric scalars be emitted as Number instead of PlainString
	DetectNumbers bool
}

// DefaultOptions returns options with default settings
func DefaultOptions() Options {
	return Options{IndentSize: DefaultIndentSize}
}

// indentSize returns IndentSize or the default if it's not positive
func (o Options) indentSize() int {
	if o.IndentSize <= 0 {
		return DefaultIndentSize
	}
	return o.IndentSize
}
