package enc

// LineEncoder works on a line-by-line basis, where every line is self-describing and can
// be decoded on its own.
type LineEncoder interface {
	// Encode splits the data into chunks and encodes every chunk on its own line, each
	// followed by a newline
	Encode([]byte) []byte

	// DecodeLine decodes a single line stripped of its line terminator
	DecodeLine([]byte) ([]byte, error)
}

var _ LineEncoder = &UUEncoder{}
