package util

import (
	"os"

	"github.com/bokysan/uucodec/internal/uucodec"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// ErrDataError is returned when the input could not be encoded / decoded (EX_DATAERR)
	ErrDataError = 65
	// ErrNoInput is returned when the input file does not exist (EX_NOINPUT)
	ErrNoInput = 66
	// ErrCantCreate is returned when the output directory does not exist (EX_CANTCREAT)
	ErrCantCreate = 73
	ErrGeneric    = 99
)

// ExitCode maps the error to the process exit code. Errors of the `flags` package carry their
// own code, codec errors are mapped to sysexits codes and everything else returns ErrGeneric.
func ExitCode(err error) int {
	var flagsError *flags.Error
	switch {
	case errors.As(err, &flagsError):
		if flagsError.Type == flags.ErrHelp {
			return 0
		}
		return int(flagsError.Type)
	case uucodec.IsInputError(err):
		return ErrDataError
	case errors.Is(err, uucodec.ErrNotFound):
		return ErrNoInput
	case errors.Is(err, uucodec.ErrNotADirectory):
		return ErrCantCreate
	default:
		return ErrGeneric
	}
}

// MustErrorNilOrExit will check the provided argument. If it's `nil` it will simply return. If it's
// not `nil`, it will log the error as `log.FatalLevel` and exit immediately with the code
// returned by ExitCode.
func MustErrorNilOrExit(err error) {
	if err == nil {
		return
	}

	code := ExitCode(err)
	if code == 0 {
		os.Exit(0)
		return
	}

	if uucodec.IsInputError(err) {
		// no need for a stack trace when the input is at fault
		log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %v", err)
	} else {
		log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
	}
	log.Exit(code)
}
