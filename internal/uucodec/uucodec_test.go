package uucodec

import (
	"github.com/bokysan/uucodec/internal/util/filetype"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// jpegLine is the first line of an encoded JPEG file. Note the trailing space.
const jpegLine = "M_]C_X  02D9)1@ ! 0$ 8 !@  #_X0)F17AI9@  34T *@    @  P$2  , "

var jpegPrefix = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x01\x00`\x00`\x00\x00\xff\xe1\x02fExif\x00\x00MM\x00*" +
	"\x00\x00\x00\x08\x00\x03\x01\x12\x00\x03\x00")

// fakeDetector returns fixed answers, so tests don't depend on the signature database
type fakeDetector struct {
	encoding  string
	binary    bool
	mimeType  string
	extension string
}

func (f *fakeDetector) DetectTextEncoding(data []byte) (string, error) {
	if f.encoding == "" {
		return filetype.DetectTextEncoding(data)
	}
	return f.encoding, nil
}

func (f *fakeDetector) IsBinary([]byte) bool {
	return f.binary
}

func (f *fakeDetector) Sniff([]byte) (string, string) {
	return f.mimeType, f.extension
}

func (f *fakeDetector) KnownExtension(extension string) bool {
	return filetype.KnownExtension(extension)
}

func newTestDecoder(d Detector) (*Decoder, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.TraceLevel)

	decoder := NewDecoder()
	decoder.Log = logger
	if d != nil {
		decoder.Detector = d
	}
	decoder.GenerateName = func() string {
		return "placeholder"
	}
	return decoder, hook
}

func newTestEncoder(d Detector) (*Encoder, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.TraceLevel)

	encoder := NewEncoder()
	encoder.Log = logger
	if d != nil {
		encoder.Detector = d
	}
	encoder.GenerateName = func() string {
		return "placeholder"
	}
	return encoder, hook
}

func warnings(hook *test.Hook) []*log.Entry {
	res := make([]*log.Entry, 0)
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel {
			res = append(res, e)
		}
	}
	return res
}
