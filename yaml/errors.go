package yaml

import "fmt"

// Reason represents why parsing failed
type Reason uint8

const (
	ExpectedColon Reason = iota
	ExpectedEndOfValue
	ExpectedBracket
	ExpectedTrueFalseNull
	ExpectedValue
)

// String is used to satisfy fmt.Stringer interface
func (r Reason) String() string {
	switch r {
	case ExpectedColon:
		return "ExpectedColon"
	case ExpectedEndOfValue:
		return "ExpectedEndOfValue"
	case ExpectedBracket:
		return "ExpectedBracket"
	case ExpectedTrueFalseNull:
		return "ExpectedTrueFalseNull"
	case ExpectedValue:
		return "ExpectedValue"
	}
	return "Unknown"
}

// Description returns human readable explanation of the reason
func (r Reason) Description() string {
	switch r {
	case ExpectedColon:
		return "expected ':' after key"
	case ExpectedEndOfValue:
		return "expected end of value"
	case ExpectedBracket:
		return "expected closing ']'"
	case ExpectedTrueFalseNull:
		return "expected 'true' or 'false' literal"
	case ExpectedValue:
		return "expected value"
	}
	return "unknown error"
}

// ParseError represents error thrown if input can not be scanned.
//
// At is a byte offset of the offending character in the input.
type ParseError struct {
	At     int
	Reason Reason
}

// Error is used to satisfy golang error interface
func (e ParseError) Error() string {
	return fmt.Sprintf("YAMLParseError: %v at %v", e.Reason, e.At)
}
