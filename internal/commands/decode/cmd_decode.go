package decode

import (
	"io"
	"os"

	"github.com/bokysan/uucodec/internal/args"
	"github.com/bokysan/uucodec/internal/logging"
	"github.com/bokysan/uucodec/internal/uucodec"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Command struct {
	args.Codec `yaml:",inline"`

	stdin  io.Reader
	stdout io.Writer
}

func NewCommand() *Command {
	return &Command{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()
	return c.Run()
}

// Run decodes the input and writes the file into the output directory or the data to stdout
func (c *Command) Run() error {
	var source interface{} = c.Input
	if c.Input == "" || c.Input == "-" {
		source = c.stdin
	}

	decoder := uucodec.NewDecoder()
	decoder.Log = logging.CommandLogger("decode")

	file, err := decoder.DecodeFrom(source)
	if err != nil {
		return err
	}

	logger := log.WithFields(log.Fields{
		"name":        file.FullName(),
		"permissions": file.PermissionsMode(),
		"mime_type":   file.MimeType(),
		"footer":      file.FooterPresent(),
	})

	if c.OutputDir != "" {
		target, err := file.WriteToDir(c.OutputDir)
		if err != nil {
			return err
		}
		logger.Infof("Decoded %d bytes into %v", file.Len(), target)
		return nil
	}

	logger.Infof("Decoded %d bytes", file.Len())
	if _, err := c.stdout.Write(file.Bytes()); err != nil {
		return errors.Wrapf(err, "Could not write decoded %v", file.FullName())
	}
	return nil
}
