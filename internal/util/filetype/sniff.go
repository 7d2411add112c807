package filetype

import (
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

const (
	EncodingASCII = "ascii"
	EncodingUTF8  = "utf_8"

	unknownMimeType = "application/octet-stream"
	textMimeType    = "text/plain"
)

// Sniff detects the file type from its signature. Both values are empty if the
// signature is unknown. The extension is returned without the leading dot.
func Sniff(data []byte) (mimeType string, extension string) {
	m := mimetype.Detect(data)
	if m == nil || m.Is(unknownMimeType) {
		return "", ""
	}
	mimeType = m.String()
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return mimeType, strings.TrimPrefix(m.Extension(), ".")
}

// IsBinary returns true if the data is not recognized as (any kind of) text.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is(textMimeType) {
			return false
		}
	}
	return true
}

// DetectTextEncoding returns the name of the character encoding of the data. Pure 7-bit
// content is reported as EncodingASCII and valid UTF-8 as EncodingUTF8; anything else
// is handed over to the charset detector and its best guess (lowercased) is returned.
func DetectTextEncoding(data []byte) (string, error) {
	ascii := true
	for _, c := range data {
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return EncodingASCII, nil
	}
	if utf8.Valid(data) {
		return EncodingUTF8, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", err
	}
	charset := strings.ToLower(result.Charset)
	if charset == "utf-8" {
		// chardet is only guessing here, we know the data is not valid UTF-8
		return "binary", nil
	}
	return charset, nil
}
