package yaml

import (
	"strconv"
	"strings"
)

// KeyKind represents the kind of a key path element
type KeyKind uint8

const (
	Named KeyKind = iota
	Indexed
)

// Key represents one element of a key path: a mapping key or a position within a list
type Key struct {
	Kind  KeyKind
	Name  string // Slice of the scanned input, set for Named keys
	Index int    // Set for Indexed keys
}

// NamedKey returns mapping key <name>
func NamedKey(name string) Key {
	return Key{Kind: Named, Name: name}
}

// IndexKey returns list position key <idx>
func IndexKey(idx int) Key {
	return Key{Kind: Indexed, Index: idx}
}

// String is used to satisfy fmt.Stringer interface
func (k Key) String() string {
	switch k.Kind {
	case Indexed:
		return "[" + strconv.Itoa(k.Index) + "]"
	default:
		return k.Name
	}
}

// KeyPath represents root-to-leaf sequence of keys.
//
// Key path given to a callback is a view into scanner storage and is valid only during that callback call.
type KeyPath []Key

// String returns key path formatted as "key.subkey[0].item"
func (p KeyPath) String() string {
	var sb strings.Builder
	for i, k := range p {
		if k.Kind == Named && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(k.String())
	}
	return sb.String()
}

// Named returns amount of Named keys in the path
func (p KeyPath) Named() int {
	count := 0
	for _, k := range p {
		if k.Kind == Named {
			count++
		}
	}
	return count
}
