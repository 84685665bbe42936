package rnd

import (
	"math/rand"
	"strconv"
	"strings"
)

// String returns random string of <length> characters taken from <r>
func String(r *rand.Rand, length uint, uppercase bool, numbers bool) string {
	charset := "abcdefghijklmnopqrstuvwxyz"
	if uppercase {
		charset += "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	}
	if numbers {
		charset += "0123456789"
	}
	charsetRunes := []rune(charset)

	outRunes := make([]rune, length)

	for i := range outRunes {
		outRunes[i] = charsetRunes[r.Intn(len(charsetRunes))]
	}

	return string(outRunes)
}

// Document returns random document of nested mappings and lists up to <depth> levels deep, where every level is
// indented by <indent> spaces.
//
// Keys of the same mapping are unique, scalars are words, integers or booleans.
func Document(r *rand.Rand, depth int, indent int) string {
	var sb strings.Builder
	writeMapping(r, &sb, depth, 0, indent)
	return sb.String()
}

// writeMapping writes mapping starting at column <col> to <sb>
func writeMapping(r *rand.Rand, sb *strings.Builder, depth, col, indent int) {
	pad := strings.Repeat(" ", col)
	entries := 1 + r.Intn(4)
	for i := 0; i < entries; i++ {
		key := "k" + String(r, uint(1+r.Intn(6)), true, false) + strconv.Itoa(i)
		switch kind := r.Intn(4); {
		case kind == 0 && depth > 0:
			sb.WriteString(pad + key + ":\n")
			writeMapping(r, sb, depth-1, col+indent, indent)
		case kind == 1 && depth > 0:
			sb.WriteString(pad + key + ":\n")
			writeList(r, sb, depth-1, col+indent, indent)
		default:
			sb.WriteString(pad + key + ": " + scalar(r) + "\n")
		}
	}
}

// writeList writes block list starting at column <col> to <sb>
func writeList(r *rand.Rand, sb *strings.Builder, depth, col, indent int) {
	pad := strings.Repeat(" ", col)
	items := 1 + r.Intn(4)
	for i := 0; i < items; i++ {
		if depth > 0 && r.Intn(2) == 0 {
			// Mapping item, the first key shares the line with the dash one indent deeper
			sb.WriteString(pad + "-" + strings.Repeat(" ", indent-1) + "k" + String(r, uint(1+r.Intn(6)), true, false) + "x: " + scalar(r) + "\n")
			if r.Intn(2) == 0 {
				writeMapping(r, sb, depth-1, col+indent, indent)
			}
			continue
		}
		sb.WriteString(pad + "- " + scalar(r) + "\n")
	}
}

// scalar returns random word, integer or boolean
func scalar(r *rand.Rand) string {
	switch r.Intn(5) {
	case 0:
		return strconv.Itoa(r.Intn(1000))
	case 1:
		return strconv.FormatBool(r.Intn(2) == 0)
	default:
		return "v" + String(r, uint(1+r.Intn(8)), true, true)
	}
}
