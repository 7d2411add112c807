package uucodec

import (
	"github.com/bokysan/uucodec/internal/util/enc"
	"github.com/bokysan/uucodec/internal/util/filetype"
	"github.com/pkg/errors"
)

// Declare the failures of the two pipelines. Every error returned by Decode and Encode
// wraps exactly one of these, so the cause can be checked with errors.Is.
var (
	ErrEncoding                 = errors.New("invalid character encoding, file must have an ascii character encoding")
	ErrMissingBeginMarker       = errors.New("missing 'begin' section of header at start of file")
	ErrInvalidPermissionsMode   = filetype.ErrInvalidPermissionsMode
	ErrLineTooLong              = enc.ErrLineTooLong
	ErrIllegalCharacter         = enc.ErrIllegalCharacter
	ErrEmptyInput               = errors.New("there is no content in file, nothing was decoded")
	ErrEmptyPayload             = errors.New("apart from header there is no content in file, nothing was decoded")
	ErrFileExtensionNotFound    = errors.New("file extension was not found in header and could not be detected from signature")
	ErrFileExtensionNotDetected = errors.New("file extension was not provided and could not be detected from signature")
	ErrNotBinary                = errors.New("the file included is not a binary file, must be a binary file")
	ErrInvalidExtension         = errors.New("invalid extension provided")
	ErrNotFound                 = filetype.ErrNotFound
	ErrInvalidType              = filetype.ErrInvalidType
	ErrNotADirectory            = errors.New("path passed is not an existing directory")
)

// DecodingErrors are the errors caused by malformed encoded input
var DecodingErrors = []error{
	ErrEncoding, ErrMissingBeginMarker, ErrInvalidPermissionsMode, ErrLineTooLong,
	ErrIllegalCharacter, ErrEmptyInput, ErrEmptyPayload, ErrFileExtensionNotFound,
}

// EncodingErrors are the errors caused by unsuitable binary input or options
var EncodingErrors = []error{
	ErrInvalidPermissionsMode, ErrFileExtensionNotDetected, ErrNotBinary, ErrInvalidExtension,
}

// IsInputError returns true if the error was caused by the provided data or options
// and not by the environment (e.g. file system).
func IsInputError(err error) bool {
	for _, e := range DecodingErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	for _, e := range EncodingErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
