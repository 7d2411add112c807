package encode

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bokysan/uucodec/internal/args"
	"github.com/bokysan/uucodec/internal/logging"
	"github.com/bokysan/uucodec/internal/uucodec"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Command struct {
	args.Codec `yaml:",inline"`

	Name      string `json:"name"   short:"n" long:"name"   env:"UU_NAME"   description:"File name written to the header, without the extension. Defaults to the input file name."`
	Mode      string `json:"mode"   short:"m" long:"mode"   env:"UU_MODE"   description:"Permissions, e.g. '644', '0755' or 'rw-r--r--'. Defaults to 644."`
	Extension string `json:"ext"    short:"e" long:"ext"    env:"UU_EXT"    description:"Extension to use if it cannot be detected from the file signature"`
	Footer    bool   `json:"footer"           long:"footer" env:"UU_FOOTER" description:"Terminate the output with the 'end' footer"`

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

// Run encodes the input and writes it to the output directory or stdout
func (c *Command) Run() error {
	opts := uucodec.EncodeOptions{
		Name:      c.Name,
		Extension: c.Extension,
	}
	if c.Mode != "" {
		opts.Permissions = c.Mode
	}

	var source interface{} = c.Input
	if c.Input == "" || c.Input == "-" {
		source = c.stdin
	} else if opts.Name == "" {
		base := filepath.Base(c.Input)
		opts.Name, _ = uucodec.SplitFileName(base)
	}

	encoder := uucodec.NewEncoder()
	encoder.Log = logging.CommandLogger("encode")

	file, err := encoder.EncodeFrom(source, opts)
	if err != nil {
		return err
	}

	if c.OutputDir != "" {
		target, err := file.WriteToDir(c.OutputDir, c.Footer)
		if err != nil {
			return err
		}
		log.WithField("file", target).Infof("Encoded %v into %v", file.FullName(), target)
		return nil
	}

	payload := file.Bytes()
	if c.Footer {
		payload = file.BytesWithFooter()
	}
	if _, err := c.stdout.Write(payload); err != nil {
		return errors.Wrapf(err, "Could not write encoded %v", file.FullName())
	}
	return nil
}
