package main

import (
	"fmt"
	"os"
	"path"

	"github.com/bokysan/uucodec/internal/args"
	"github.com/bokysan/uucodec/internal/commands/decode"
	"github.com/bokysan/uucodec/internal/commands/encode"
	"github.com/bokysan/uucodec/internal/commands/server"
	"github.com/bokysan/uucodec/internal/commands/version"
	ucFlags "github.com/bokysan/uucodec/internal/flags"
	"github.com/bokysan/uucodec/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// UUCodec is the main executable
type UUCodec struct {
	parser *flags.Parser
}

// NewUUCodec will create a new instance of UUCodec and initialize the parser
func NewUUCodec() *UUCodec {
	executablePath := path.Base(os.Args[0])

	uc := &UUCodec{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	uc.setupGeneral()
	uc.addCommand("version", "Print the version", "Print the application version and exit", &version.Command{})
	uc.addCommand("encode", "Encode a binary file", "Encode a binary file into uuencoded text", encode.NewCommand())
	uc.addCommand("decode", "Decode a uuencoded file", "Decode uuencoded text back into the binary file", decode.NewCommand())
	uc.addCommand("server", "Run the server", "Run a HTTP server encoding and decoding request bodies", server.NewCommand())

	return uc
}

// setupGeneral will configure general options
func (uc *UUCodec) setupGeneral() {
	if _, err := uc.parser.AddGroup("General", "General options", &args.General); err != nil {
		util.MustErrorNilOrExit(errors.WithStack(err))
	}
}

func (uc *UUCodec) addCommand(name, short, long string, data interface{}) {
	_, err := uc.parser.AddCommand(name, short, long, data)
	util.MustErrorNilOrExit(err)
}

// main parses the command line and the configuration file and runs the selected command
func main() {
	uuCodec := NewUUCodec()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: fmt.Sprintf("Configuration file %s does not exist.", file),
			})
		}

		args.General.ConfigurationFilePath = file
		return ucFlags.NewYamlParser(uuCodec.parser).ParseFile(file)
	}

	_, err := uuCodec.parser.Parse()
	util.MustErrorNilOrExit(err)
}
