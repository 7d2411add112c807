package uucodec

import (
	"github.com/bokysan/uucodec/internal/util/filetype"
)

// Detector recognizes the content of byte buffers. The pipelines use it to check their
// input and to figure out the file type.
type Detector interface {
	// DetectTextEncoding returns the name of the character encoding of the data
	DetectTextEncoding(data []byte) (string, error)
	// IsBinary returns false if the data is text
	IsBinary(data []byte) bool
	// Sniff returns the MIME type and extension (without the dot) from the signature
	Sniff(data []byte) (mimeType string, extension string)
	// KnownExtension returns true if the extension maps to a known MIME type
	KnownExtension(extension string) bool
}

// NameGenerator produces unique names for files which do not carry one
type NameGenerator func() string

type defaultDetector struct{}

func (defaultDetector) DetectTextEncoding(data []byte) (string, error) {
	return filetype.DetectTextEncoding(data)
}

func (defaultDetector) IsBinary(data []byte) bool {
	return filetype.IsBinary(data)
}

func (defaultDetector) Sniff(data []byte) (string, string) {
	return filetype.Sniff(data)
}

func (defaultDetector) KnownExtension(extension string) bool {
	return filetype.KnownExtension(extension)
}

// DefaultDetector is backed by signature sniffing and charset detection
var DefaultDetector Detector = defaultDetector{}
