package uucodec

import (
	"bytes"
	"strings"

	"github.com/bokysan/uucodec/internal/util/enc"
	"github.com/bokysan/uucodec/internal/util/filetype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Decoder converts uuencoded text back into binary data. The zero value is not usable,
// create it with NewDecoder.
type Decoder struct {
	Detector     Detector
	GenerateName NameGenerator
	Log          log.FieldLogger

	lines enc.LineEncoder
}

// NewDecoder creates a decoder with the default detector and the standard logger
func NewDecoder() *Decoder {
	return &Decoder{
		Detector:     DefaultDetector,
		GenerateName: filetype.GeneratePlaceholderName,
		Log:          log.StandardLogger(),
		lines:        &enc.UUEncoder{},
	}
}

// Decode decodes the source with a default Decoder
func Decode(source []byte) (*DecodedFile, error) {
	return NewDecoder().Decode(source)
}

// DecodeFrom decodes a file path, a byte slice or an io.Reader with a default Decoder
func DecodeFrom(source interface{}) (*DecodedFile, error) {
	return NewDecoder().DecodeFrom(source)
}

// DecodeFrom loads the source and decodes it
func (d *Decoder) DecodeFrom(source interface{}) (*DecodedFile, error) {
	data, err := filetype.LoadBytes(source)
	if err != nil {
		return nil, err
	}
	return d.Decode(data)
}

// Decode parses the header, decodes the body lines up to the first empty line or the
// `end` footer and figures out the file type of the decoded data.
func (d *Decoder) Decode(source []byte) (*DecodedFile, error) {
	encoding, err := d.Detector.DetectTextEncoding(source)
	if err != nil {
		return nil, errors.Wrapf(ErrEncoding, "%v", err)
	}
	logger := d.Log.WithField("charset", encoding)
	if encoding != filetype.EncodingASCII && encoding != filetype.EncodingUTF8 {
		logger.Debugf("Input is not ASCII or UTF-8 text")
		return nil, errors.Wrapf(ErrEncoding, "detected %v", encoding)
	}
	logger.Tracef("Decoding %d bytes", len(source))

	lines := bytes.Split(source, []byte{'\n'})

	// skip any empty lines before the header
	pos := 0
	for pos < len(lines) && isBlank(lines[pos]) {
		pos++
	}
	if pos == len(lines) {
		return nil, errors.WithStack(ErrEmptyInput)
	}

	header := ParseHeader(bytes.TrimRight(lines[pos], "\r"))
	if header.Marker != BeginMarker {
		return nil, errors.Wrapf(ErrMissingBeginMarker, "line %d", pos+1)
	}
	if !filetype.ValidPermissionsMode(header.Mode) {
		return nil, errors.Wrapf(ErrInvalidPermissionsMode, "%q", header.Mode)
	}
	d.Log.WithField("header", header.String()).Tracef("Found header at line %d", pos+1)

	payload, footerPresent, err := d.decodeBody(lines, pos+1)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errors.WithStack(ErrEmptyPayload)
	}

	name, headerExtension := SplitFileName(header.Name)
	mimeType, detectedExtension := d.Detector.Sniff(payload)

	if headerExtension != "" && detectedExtension != "" && !strings.EqualFold(headerExtension, detectedExtension) {
		d.Log.WithFields(log.Fields{
			"header_extension":   headerExtension,
			"detected_extension": detectedExtension,
		}).Warnf("The file extension generated from file type detection does not match the extension from uu header")
	}

	extension := detectedExtension
	if extension == "" {
		extension = headerExtension
	}
	if extension == "" {
		return nil, errors.WithStack(ErrFileExtensionNotFound)
	}

	if name == "" {
		name = d.GenerateName()
		d.Log.Debugf("No file name in header, using %v", name)
	}

	return &DecodedFile{
		FileInfo: FileInfo{
			name:            name,
			permissionsMode: header.Mode,
			mimeType:        mimeType,
			extension:       extension,
			payload:         payload,
		},
		footerPresent: footerPresent,
	}, nil
}

// decodeBody decodes lines starting at the given position. It returns the decoded data and
// true if the `end` footer was found.
func (d *Decoder) decodeBody(lines [][]byte, pos int) ([]byte, bool, error) {
	payload := &bytes.Buffer{}

	for ; pos < len(lines); pos++ {
		line := lines[pos]

		if len(bytes.TrimRight(line, "\r")) == 0 {
			return payload.Bytes(), hasFooter(lines[pos+1:]), nil
		}
		if bytes.HasPrefix(line, []byte(EndMarker)) {
			return payload.Bytes(), true, nil
		}

		line = bytes.TrimRight(line, "\r")
		if len(line) > enc.MaxLineLength {
			return nil, false, errors.Wrapf(ErrLineTooLong, "line %d: length of %d", pos+1, len(line))
		}

		decoded, err := d.lines.DecodeLine(line)
		if err != nil {
			return nil, false, errors.Wrapf(err, "line %d", pos+1)
		}
		payload.Write(decoded)
	}

	return payload.Bytes(), false, nil
}

// hasFooter checks if the first non-empty line is the `end` footer
func hasFooter(lines [][]byte) bool {
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		return bytes.HasPrefix(line, []byte(EndMarker))
	}
	return false
}

func isBlank(line []byte) bool {
	return len(bytes.TrimRight(line, " \t\r")) == 0
}
