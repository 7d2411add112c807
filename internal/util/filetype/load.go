package filetype

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
)

// LoadBytes resolves the source into a byte buffer. Accepted are a path to an existing
// regular file (string), a byte slice or an io.Reader, which is read until EOF.
func LoadBytes(source interface{}) ([]byte, error) {
	switch s := source.(type) {
	case []byte:
		return s, nil
	case string:
		info, err := os.Stat(s)
		if err != nil || !info.Mode().IsRegular() {
			return nil, errors.Wrapf(ErrNotFound, "%v", s)
		}
		data, err := ioutil.ReadFile(s)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %v", s)
		}
		return data, nil
	case io.Reader:
		data, err := ioutil.ReadAll(s)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return data, nil
	default:
		return nil, errors.Wrapf(ErrInvalidType, "got %T", source)
	}
}
