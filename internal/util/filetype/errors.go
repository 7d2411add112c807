package filetype

import "errors"

var (
	// ErrInvalidPermissionsMode is returned when a permission value cannot be turned into a 3-digit octal mode
	ErrInvalidPermissionsMode = errors.New("permissions mode included is invalid")
	// ErrNotFound is returned when a path does not reference an existing file
	ErrNotFound = errors.New("file path passed does not reference a valid file")
	// ErrInvalidType is returned when LoadBytes does not know how to read the provided source
	ErrInvalidType = errors.New("invalid type for source, must be one of (string, []byte, io.Reader)")
)
