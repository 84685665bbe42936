package yaml

import (
	"golang.org/x/exp/slices"
)

// Event represents leaf value with the key path owned by the event
type Event struct {
	Path  KeyPath
	Value Value
}

// String returns event formatted as "key.subkey: value"
func (e Event) String() string {
	return e.Path.String() + ": " + e.Value.String()
}

// Collect returns every event of <input>.
//
// Key paths are copied, strings still are slices of <input>.
//
// On error returns events emitted before the error.
func Collect(input string, opts Options) ([]Event, error) {
	var events []Event
	err := ParseWithExitSignal(input, func(path KeyPath, value Value) bool {
		events = append(events, Event{Path: slices.Clone(path), Value: value})
		return false
	}, opts)
	return events, err
}
