package uucodec

import (
	"strings"

	"github.com/bokysan/uucodec/internal/util/enc"
	"github.com/bokysan/uucodec/internal/util/filetype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// EncodeOptions describe the header of the encoded file
type EncodeOptions struct {
	// Name of the file without the extension. Whitespace is replaced by underscores.
	Name string
	// Permissions is anything filetype.PermissionsToMode accepts. Defaults to "644" when nil.
	Permissions interface{}
	// Extension (with or without the dot) is used if it cannot be detected from the data
	Extension string
}

// Encoder converts binary data into uuencoded text. Create it with NewEncoder.
type Encoder struct {
	Detector     Detector
	GenerateName NameGenerator
	Log          log.FieldLogger

	lines enc.LineEncoder
}

// NewEncoder creates an encoder with the default detector and the standard logger
func NewEncoder() *Encoder {
	return &Encoder{
		Detector:     DefaultDetector,
		GenerateName: filetype.GeneratePlaceholderName,
		Log:          log.StandardLogger(),
		lines:        &enc.UUEncoder{},
	}
}

// Encode encodes the data with a default Encoder
func Encode(data []byte, opts EncodeOptions) (*EncodedFile, error) {
	return NewEncoder().Encode(data, opts)
}

// EncodeFrom encodes a file path, a byte slice or an io.Reader with a default Encoder
func EncodeFrom(source interface{}, opts EncodeOptions) (*EncodedFile, error) {
	return NewEncoder().EncodeFrom(source, opts)
}

// EncodeFrom validates the options, loads the source and encodes it
func (e *Encoder) EncodeFrom(source interface{}, opts EncodeOptions) (*EncodedFile, error) {
	if _, err := e.permissions(opts.Permissions); err != nil {
		return nil, err
	}
	if _, err := e.extension(opts.Extension); err != nil {
		return nil, err
	}
	data, err := filetype.LoadBytes(source)
	if err != nil {
		return nil, err
	}
	return e.Encode(data, opts)
}

// Encode writes the header and encodes the data in lines of 45 bytes. The footer is not
// added, see EncodedFile.BytesWithFooter.
func (e *Encoder) Encode(data []byte, opts EncodeOptions) (*EncodedFile, error) {
	name := strings.Join(strings.Fields(opts.Name), "_")
	if name == "" {
		name = e.GenerateName()
		e.Log.Debugf("No file name provided, using %v", name)
	}

	mode, err := e.permissions(opts.Permissions)
	if err != nil {
		return nil, err
	}

	providedExtension, err := e.extension(opts.Extension)
	if err != nil {
		return nil, err
	}

	if !e.Detector.IsBinary(data) {
		return nil, errors.WithStack(ErrNotBinary)
	}

	mimeType, detectedExtension := e.Detector.Sniff(data)
	if providedExtension == "" && detectedExtension == "" {
		return nil, errors.WithStack(ErrFileExtensionNotDetected)
	}
	if providedExtension != "" && detectedExtension != "" && !strings.EqualFold(providedExtension, detectedExtension) {
		e.Log.WithFields(log.Fields{
			"provided_extension": providedExtension,
			"detected_extension": detectedExtension,
		}).Warnf("The file extension generated from file type detection does not match the extension provided")
	}

	extension := detectedExtension
	if extension == "" {
		extension = providedExtension
	}

	header := FormatHeader(mode, name+"."+extension)
	payload := make([]byte, 0, len(header)+1+enc.EncodedSize(len(data)))
	payload = append(payload, header...)
	payload = append(payload, '\n')
	payload = append(payload, e.lines.Encode(data)...)

	e.Log.Debugf("Encoded %d bytes into %d bytes", len(data), len(payload))

	return &EncodedFile{
		FileInfo: FileInfo{
			name:            name,
			permissionsMode: mode,
			mimeType:        mimeType,
			extension:       extension,
			payload:         payload,
		},
	}, nil
}

func (e *Encoder) permissions(value interface{}) (string, error) {
	if value == nil {
		return filetype.DefaultPermissions, nil
	}
	return filetype.PermissionsToMode(value)
}

// extension validates the extension and returns it without the leading dot
func (e *Encoder) extension(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	if !e.Detector.KnownExtension(value) {
		return "", errors.Wrapf(ErrInvalidExtension, "%q", value)
	}
	return strings.TrimPrefix(filetype.NormalizeExtension(value), "."), nil
}
