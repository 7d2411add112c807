package filetype

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultPermissions = "644"

	maxPermissions = 0777
	symbolic       = "rwxrwxrwx"
)

// ValidPermissionsMode checks that the mode is exactly three octal digits.
func ValidPermissionsMode(mode string) bool {
	if len(mode) != 3 {
		return false
	}
	for _, c := range mode {
		if c < '0' || c > '7' {
			return false
		}
	}
	return true
}

// PermissionsFromFileMode converts the permission bits of the mode into the 3-digit string.
func PermissionsFromFileMode(mode os.FileMode) string {
	return fmt.Sprintf("%03o", mode.Perm())
}

// PermissionsToMode will take a permission value and return the 3-digit octal mode. Accepted
// are integers of any kind (e.g. 0644), os.FileMode and strings in the form of "644", "0644",
// "0o644" or "rw-r--r--".
func PermissionsToMode(value interface{}) (string, error) {
	switch v := value.(type) {
	case os.FileMode:
		return PermissionsFromFileMode(v), nil
	case string:
		return permissionsFromString(v)
	}

	if value != nil {
		switch v := reflect.ValueOf(value); v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return permissionsFromInt(v.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if v.Uint() > maxPermissions {
				return "", errors.Wrapf(ErrInvalidPermissionsMode, "%#o is out of range", v.Uint())
			}
			return permissionsFromInt(int64(v.Uint()))
		}
	}
	return "", errors.Wrapf(ErrInvalidPermissionsMode, "unsupported type %T", value)
}

func permissionsFromInt(v int64) (string, error) {
	if v < 0 || v > maxPermissions {
		return "", errors.Wrapf(ErrInvalidPermissionsMode, "%#o is out of range", v)
	}
	return fmt.Sprintf("%03o", v), nil
}

func permissionsFromString(s string) (string, error) {
	s = strings.TrimSpace(s)

	if len(s) == len(symbolic)+1 && strings.IndexByte("-dl", s[0]) >= 0 {
		s = s[1:]
	}
	if len(s) == len(symbolic) && strings.Trim(s, "rwx-") == "" {
		return permissionsFromSymbolic(s)
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	if len(digits) == 4 && digits[0] == '0' {
		digits = digits[1:]
	}
	if !ValidPermissionsMode(digits) {
		return "", errors.Wrapf(ErrInvalidPermissionsMode, "%q", s)
	}
	return digits, nil
}

func permissionsFromSymbolic(s string) (string, error) {
	var mode int64
	for i := 0; i < len(symbolic); i++ {
		mode <<= 1
		switch s[i] {
		case symbolic[i]:
			mode |= 1
		case '-':
		default:
			return "", errors.Wrapf(ErrInvalidPermissionsMode, "%q: unexpected %q at position %d", s, s[i], i)
		}
	}
	return strconv.FormatInt(mode|01000, 8)[1:], nil
}
