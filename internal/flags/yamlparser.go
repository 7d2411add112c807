package flags

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"reflect"
	"unsafe"

	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// YamlParser fills go-flags commands and groups from a YAML file instead of a standard INI.
// Every top-level key is matched to a command or a group, e.g.
//
//	encode:
//	  name: holiday picture
//	  mode: "600"
type YamlParser struct {
	parser *flags.Parser
}

// NewYamlParser creates a new yaml parser for a given flags.Parser.
func NewYamlParser(p *flags.Parser) *YamlParser {
	return &YamlParser{
		parser: p,
	}
}

// ParseFile parses options from a yaml formatted file. Other yaml files may be referenced relative
// to the directory of the file.
func (y *YamlParser) ParseFile(filename string) error {
	body, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}

	defer func() {
		if err := body.Close(); err != nil {
			log.Errorf("Could not close %s: %v", filename, err)
		}
	}()

	return y.parse(body, yaml.ReferenceDirs(path.Dir(filename)), yaml.RecursiveDir(true))
}

// ParseBytes parses options from yaml data held in memory
func (y *YamlParser) ParseBytes(data []byte) error {
	return y.parse(bytes.NewReader(data))
}

// parse reads YAML documents (separated by `---`) one after another.
func (y *YamlParser) parse(config io.Reader, opts ...yaml.DecodeOption) error {
	decoder := yaml.NewDecoder(config, opts...)

	for i := 1; ; i++ {
		obj := make(map[string]interface{})
		err := decoder.Decode(&obj)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrapf(err, "Could not decode document at position %v", i)
		}

		if err = y.parseSegment(obj); err != nil {
			return errors.Wrapf(err, "Invalid document at position %v", i)
		}
	}
}

// parseSegment matches every top-level key to a command / group and unmarshals the value
// into the data structure behind it.
func (y *YamlParser) parseSegment(obj map[string]interface{}) error {
	for name, val := range obj {
		command := y.parser.Find(name)
		if command == nil {
			return errors.WithStack(&flags.Error{
				Type:    flags.ErrUnknownGroup,
				Message: fmt.Sprintf("could not find option command '%s'", name),
			})
		}

		// go-flags does not expose the data structure of a group, so it's dug out with reflection
		group := reflect.Indirect(reflect.ValueOf(command.Group))
		dataField := group.FieldByName("data")
		dataField = reflect.NewAt(dataField.Type(), unsafe.Pointer(dataField.UnsafeAddr())).Elem()

		conv, err := yaml.Marshal(val)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := yaml.Unmarshal(conv, dataField.Elem().Interface()); err != nil {
			return errors.Wrapf(err, "Could not apply options of '%s'", name)
		}
	}
	return nil
}
