package uucodec

import (
	"bytes"
	"strings"
)

const (
	// BeginMarker is the first token of every header
	BeginMarker = "begin"
	// EndMarker is the optional footer
	EndMarker = "end"
)

// Header is the parsed `begin <mode> <name>` line. Missing fields are left empty.
type Header struct {
	Marker string
	Mode   string
	Name   string
}

// FormatHeader returns the header line (without the line terminator). Spaces in the name
// are not escaped.
func FormatHeader(mode, name string) []byte {
	return []byte(BeginMarker + " " + mode + " " + name)
}

// ParseHeader splits the line on spaces, ignoring empty tokens. Everything after the
// mode is considered to be the name, which allows names with spaces to survive.
func ParseHeader(line []byte) Header {
	tokens := make([]string, 0, 3)
	for _, t := range bytes.Split(line, []byte{' '}) {
		if len(t) > 0 {
			tokens = append(tokens, string(t))
		}
	}

	h := Header{}
	switch {
	case len(tokens) >= 3:
		h.Name = strings.Join(tokens[2:], " ")
		fallthrough
	case len(tokens) == 2:
		h.Mode = tokens[1]
		fallthrough
	case len(tokens) == 1:
		h.Marker = tokens[0]
	}
	return h
}

func (h Header) String() string {
	return string(FormatHeader(h.Mode, h.Name))
}

// SplitFileName splits the name on the last dot. Names without a dot or starting with
// the only dot do not have an extension. A trailing dot is dropped.
func SplitFileName(fullName string) (name, extension string) {
	i := strings.LastIndexByte(fullName, '.')
	if i <= 0 {
		return fullName, ""
	}
	return fullName[:i], fullName[i+1:]
}
