package uucodec

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// EncodedFileSuffix is appended to the full name when writing encoded files
	EncodedFileSuffix = ".uu"

	filePermissions = 0644
)

// FileInfo holds the fields shared by DecodedFile and EncodedFile. It cannot be modified
// after it has been created.
type FileInfo struct {
	name            string
	permissionsMode string
	mimeType        string
	extension       string
	payload         []byte
}

// Name is the file name without the extension
func (f *FileInfo) Name() string {
	return f.name
}

// PermissionsMode is the 3-digit octal mode, e.g. "644"
func (f *FileInfo) PermissionsMode() string {
	return f.permissionsMode
}

// MimeType is the type detected from the signature; empty if the signature is unknown.
func (f *FileInfo) MimeType() string {
	return f.mimeType
}

func (f *FileInfo) Extension() string {
	return f.extension
}

// FullName returns the name with the extension
func (f *FileInfo) FullName() string {
	if f.extension == "" {
		return f.name
	}
	return f.name + "." + f.extension
}

// Bytes returns a copy of the payload
func (f *FileInfo) Bytes() []byte {
	res := make([]byte, len(f.payload))
	copy(res, f.payload)
	return res
}

// Len returns the size of the payload
func (f *FileInfo) Len() int {
	return len(f.payload)
}

func (f *FileInfo) writeToDir(dir, fileName string, payload []byte) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", errors.Wrapf(ErrNotADirectory, "%v", dir)
	}
	target := filepath.Join(dir, fileName)
	if err := ioutil.WriteFile(target, payload, filePermissions); err != nil {
		return "", errors.Wrapf(err, "could not write %v", target)
	}
	return target, nil
}

// DecodedFile is the result of Decode, the payload is the decoded binary data.
type DecodedFile struct {
	FileInfo
	footerPresent bool
}

// FooterPresent returns true if the encoded data was terminated with the `end` line
func (f *DecodedFile) FooterPresent() bool {
	return f.footerPresent
}

// WriteToDir writes the payload into the directory, using FullName as the file name. The
// permissions mode is not applied to the file. Returns the path of the file written.
func (f *DecodedFile) WriteToDir(dir string) (string, error) {
	return f.writeToDir(dir, f.FullName(), f.payload)
}

func (f *DecodedFile) String() string {
	return fmt.Sprintf("DecodedFile(name=%v, permissions_mode=%v, mime_type=%v, extension=%v, footer=%v, size=%v)",
		f.name, f.permissionsMode, f.mimeType, f.extension, f.footerPresent, len(f.payload))
}

// EncodedFile is the result of Encode, the payload is the header followed by encoded lines.
type EncodedFile struct {
	FileInfo
}

// BytesWithFooter returns the payload terminated with an empty line and the `end` footer.
func (f *EncodedFile) BytesWithFooter() []byte {
	res := make([]byte, 0, len(f.payload)+len(EndMarker)+2)
	res = append(res, f.payload...)
	res = append(res, '\n')
	res = append(res, EndMarker...)
	return append(res, '\n')
}

// WriteToDir writes the payload into the directory as FullName + ".uu". Returns the path
// of the file written.
func (f *EncodedFile) WriteToDir(dir string, footer bool) (string, error) {
	payload := f.payload
	if footer {
		payload = f.BytesWithFooter()
	}
	return f.writeToDir(dir, f.FullName()+EncodedFileSuffix, payload)
}

func (f *EncodedFile) String() string {
	return fmt.Sprintf("EncodedFile(name=%v, permissions_mode=%v, mime_type=%v, extension=%v, size=%v)",
		f.name, f.permissionsMode, f.mimeType, f.extension, len(f.payload))
}
