package uucodec

import (
	"strings"
	"testing"

	"github.com/bokysan/uucodec/internal/util/filetype"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	xlsxLine = `M4$L#!!0 !@ (    (0#=*XM8; $  ! %   3  @"6T-O;G1E;G1?5'EP97-=`
	docxLine = `M-7UN2"(89-ESTUAGE4R$8+04B>I\Z=2?E'R74)!RVX-S'?".&A@_F%!7C@?L`
	pptxLine = `M99ICAUS;"TQ84R&)K"^0Z][P=1H>@==EQKVR&+.HUHYJ Q9U::Z_V6D%JNKW`
	randLine = `M./JH%ZQWFGW/;*I&+I^#6:.8U9AY_Y>IF/5Y&%,Q*_8PIJL2,EV7D*E10J:;`
)

func Test_DecodeErrorCharacterEncoding(t *testing.T) {
	decoder, _ := newTestDecoder(nil)
	_, err := decoder.Decode([]byte("begin 777 example.jpg\n\xC3\x28\x96\xA0\nend"))
	require.True(t, errors.Is(err, ErrEncoding), "Expected encoding error, got: %v", err)

	decoder, hook := newTestDecoder(&fakeDetector{encoding: "utf_16"})
	_, err = decoder.Decode([]byte("begin 777 example.jpg\n" + jpegLine + "\n"))
	require.True(t, errors.Is(err, ErrEncoding), "Expected encoding error, got: %v", err)
	require.NotNil(t, hook.LastEntry())
	require.Equal(t, "utf_16", hook.LastEntry().Data["charset"])
}

func Test_DecodeLogsCharset(t *testing.T) {
	decoder, hook := newTestDecoder(&fakeDetector{extension: "jpg", mimeType: "image/jpeg"})
	_, err := decoder.Decode([]byte("begin 644 example.jpg\n" + jpegLine + "\nend"))
	require.NoError(t, err)

	found := false
	for _, e := range hook.AllEntries() {
		if e.Data["charset"] == filetype.EncodingASCII {
			found = true
		}
	}
	require.True(t, found, "Expected the detected charset to be logged")
}

func Test_DecodeErrorNoContent(t *testing.T) {
	decoder, _ := newTestDecoder(nil)

	_, err := decoder.Decode([]byte("begin 777 example.jpg\n\nend"))
	require.True(t, errors.Is(err, ErrEmptyPayload), "Expected empty payload, got: %v", err)

	_, err = decoder.Decode([]byte("begin 777 example.jpg\nend"))
	require.True(t, errors.Is(err, ErrEmptyPayload), "Expected empty payload, got: %v", err)

	_, err = decoder.Decode([]byte(""))
	require.True(t, errors.Is(err, ErrEmptyInput), "Expected empty input, got: %v", err)

	_, err = decoder.Decode([]byte("\n\r\n   \n"))
	require.True(t, errors.Is(err, ErrEmptyInput), "Expected empty input, got: %v", err)
}

func Test_DecodeErrorMalformedHeader(t *testing.T) {
	decoder, _ := newTestDecoder(nil)

	_, err := decoder.Decode([]byte("777 example.jpg\n\nend"))
	require.True(t, errors.Is(err, ErrMissingBeginMarker), "Expected missing begin, got: %v", err)

	_, err = decoder.Decode([]byte("BEGIN 777 example.jpg\n" + jpegLine + "\n"))
	require.True(t, errors.Is(err, ErrMissingBeginMarker), "Expected missing begin, got: %v", err)
}

func Test_DecodeErrorPermissionsMode(t *testing.T) {
	decoder, _ := newTestDecoder(nil)

	for _, mode := range []string{"842", "1111", "999", "7777", "1", "rwx", ""} {
		_, err := decoder.Decode([]byte("begin " + mode + " example.jpg\n" + jpegLine + "\nend"))
		require.Truef(t, errors.Is(err, ErrInvalidPermissionsMode), "Mode %q should be invalid, got: %v", mode, err)
	}

	_, err := decoder.Decode([]byte("begin\n" + jpegLine + "\nend"))
	require.True(t, errors.Is(err, ErrInvalidPermissionsMode), "Expected invalid mode, got: %v", err)

	file, err := decoder.Decode([]byte("begin 777 example.jpg\n" + jpegLine + "\nend"))
	require.NoError(t, err)
	require.Equal(t, "777", file.PermissionsMode())
}

func Test_DecodeInvalidLineLength(t *testing.T) {
	decoder, _ := newTestDecoder(nil)

	_, err := decoder.Decode([]byte("begin 742 example.jpg\n" + jpegLine + "TTTTTT\nend"))
	require.True(t, errors.Is(err, ErrLineTooLong), "Expected line too long, got: %v", err)
	require.Contains(t, err.Error(), "length of 67")

	// 61 characters is fine, even with a carriage return
	file, err := decoder.Decode([]byte("begin 742 example.jpg\r\n" + jpegLine + "\r\n\r\nend\r\n"))
	require.NoError(t, err)
	require.Equal(t, jpegPrefix, file.Bytes())
	require.True(t, file.FooterPresent())
}

func Test_DecodeIllegalCharacter(t *testing.T) {
	decoder, _ := newTestDecoder(nil)

	// The lowercase q is the issue in this example
	line := strings.Replace(randLine, "Q", "q", 1)
	_, err := decoder.Decode([]byte("begin 742 example.jpg\n" + line + "\nend"))
	require.True(t, errors.Is(err, ErrIllegalCharacter), "Expected illegal character, got: %v", err)
	require.Contains(t, err.Error(), "line 2")

	_, err = decoder.Decode([]byte("begin 742 example.jpg\n#0V%\x7f\nend"))
	require.True(t, errors.Is(err, ErrIllegalCharacter), "Expected illegal character, got: %v", err)
}

func Test_DecodeErrorFileExtension(t *testing.T) {
	decoder, _ := newTestDecoder(&fakeDetector{})

	_, err := decoder.Decode([]byte("begin 742\n" + randLine + "\nend"))
	require.True(t, errors.Is(err, ErrFileExtensionNotFound), "Expected extension not found, got: %v", err)

	_, err = decoder.Decode([]byte("begin 742 README\n" + randLine + "\nend"))
	require.True(t, errors.Is(err, ErrFileExtensionNotFound), "Expected extension not found, got: %v", err)
}

func Test_DecodePartial(t *testing.T) {
	decoder, _ := newTestDecoder(&fakeDetector{})

	file, err := decoder.Decode([]byte("begin 634 example_2.xls\n" + xlsxLine + "\n\nend"))
	require.NoError(t, err)
	require.Equal(t, "example_2", file.Name())
	require.Equal(t, "634", file.PermissionsMode())
	require.Equal(t, "xls", file.Extension())
	require.Equal(t, []byte("PK\x03\x04\x14\x00\x06\x00\x08\x00\x00\x00!\x00\xdd+\x8bXl\x01\x00\x00\x10\x05\x00"+
		"\x00\x13\x00\x08\x02[Content_Types]"), file.Bytes())

	file, err = decoder.Decode([]byte("begin 421 example_3.docx\n" + docxLine + "\n\nend"))
	require.NoError(t, err)
	require.Equal(t, "example_3", file.Name())
	require.Equal(t, "421", file.PermissionsMode())
	require.Equal(t, "example_3.docx", file.FullName())
	require.Equal(t, []byte("5}nH\"\x18d\xd9s\xd3Xg\x95L\x84`\xb4\x14\x89\xea|\xe9\xd4"+
		"\x9f\x94|\x97P\x90r\xdb\x83s\x1d\xf0\x8e\x1a\x18?\x98PW\x8e\x07\xec"), file.Bytes())

	file, err = decoder.Decode([]byte("begin 444 example_4.pptx\n" + pptxLine + "\n"))
	require.NoError(t, err)
	require.Equal(t, "example_4", file.Name())
	require.Equal(t, "444", file.PermissionsMode())
	require.False(t, file.FooterPresent())
	require.Equal(t, []byte("e\x9ac\x87\\\xdb\x0bLXS!\x89\xac/\x90\xeb\xde\xf0u\x1a\x1e\x81\xd7e\xc6\xbd\xb2\x18"+
		"\xb3\xa8\xd6\x8ej\x03\x16ui\xae\xbf\xd9i\x05\xaa\xea\xf7"), file.Bytes())
}

func Test_DecodeJpeg(t *testing.T) {
	decoder, hook := newTestDecoder(nil)

	file, err := decoder.Decode([]byte("begin 777 example.jpg\n" + jpegLine + "\n\nend"))
	require.NoError(t, err)
	require.Equal(t, jpegPrefix, file.Bytes())
	require.Equal(t, "777", file.PermissionsMode())
	require.Equal(t, "image/jpeg", file.MimeType())
	require.Equal(t, "jpg", file.Extension())
	require.Equal(t, "example.jpg", file.FullName())
	require.True(t, file.FooterPresent())
	require.Empty(t, warnings(hook))
}

func Test_DecodeFooter(t *testing.T) {
	decoder, _ := newTestDecoder(&fakeDetector{extension: "jpg"})

	footers := map[string]bool{
		"\nend":          true,
		"\nend\n":        true,
		"\n\n\nend\n":    true,
		"\r\nend\r\n":    true,
		"end\n":          true,
		"":               false,
		"\n":             false,
		"\n\n":           false,
		"\nsomething\n":  false,
		"\n" + jpegLine:  false,
	}
	for footer, expected := range footers {
		source := "begin 644 footer.jpg\n" + jpegLine + "\n" + footer
		file, err := decoder.Decode([]byte(source))
		require.NoErrorf(t, err, "Footer %q", footer)
		require.Equalf(t, expected, file.FooterPresent(), "Footer %q", footer)
		require.Equalf(t, jpegPrefix, file.Bytes(), "Footer %q", footer)
	}
}

func Test_DecodeSkipsLeadingBlankLines(t *testing.T) {
	decoder, _ := newTestDecoder(nil)

	file, err := decoder.Decode([]byte("\n\r\n\nbegin 600 example.jpg\n" + jpegLine + "\nend\n"))
	require.NoError(t, err)
	require.Equal(t, "600", file.PermissionsMode())
	require.Equal(t, jpegPrefix, file.Bytes())
}

func Test_DecodeExtensionMismatch(t *testing.T) {
	decoder, hook := newTestDecoder(&fakeDetector{mimeType: "image/png", extension: "png"})

	file, err := decoder.Decode([]byte("begin 644 picture.jpg\n" + jpegLine + "\nend"))
	require.NoError(t, err)
	require.Equal(t, "png", file.Extension(), "Detected extension should win")
	require.Equal(t, "image/png", file.MimeType())
	require.Equal(t, "picture", file.Name())

	w := warnings(hook)
	require.Len(t, w, 1)
	require.Equal(t, "jpg", w[0].Data["header_extension"])
	require.Equal(t, "png", w[0].Data["detected_extension"])
}

func Test_DecodeNameWithSpaces(t *testing.T) {
	decoder, _ := newTestDecoder(&fakeDetector{})

	file, err := decoder.Decode([]byte("begin 642 not so cool example.xlsx\n" + xlsxLine + "\nend"))
	require.NoError(t, err)
	require.Equal(t, "not so cool example", file.Name())
	require.Equal(t, "not so cool example.xlsx", file.FullName())
}

func Test_DecodeNameWithTrailingDot(t *testing.T) {
	decoder, _ := newTestDecoder(&fakeDetector{extension: "jpg", mimeType: "image/jpeg"})

	file, err := decoder.Decode([]byte("begin 644 foo.\n" + jpegLine + "\nend"))
	require.NoError(t, err)
	require.Equal(t, "foo", file.Name())
	require.Equal(t, "foo.jpg", file.FullName())
}

func Test_DecodePlaceholderName(t *testing.T) {
	decoder, _ := newTestDecoder(&fakeDetector{extension: "jpg", mimeType: "image/jpeg"})

	file, err := decoder.Decode([]byte("begin 644\n" + jpegLine + "\nend"))
	require.NoError(t, err)
	require.Equal(t, "placeholder", file.Name())
	require.Equal(t, "placeholder.jpg", file.FullName())
}

func Test_DecodeFrom(t *testing.T) {
	file, err := DecodeFrom(strings.NewReader("begin 777 example.jpg\n" + jpegLine + "\n\nend"))
	require.NoError(t, err)
	require.Equal(t, jpegPrefix, file.Bytes())

	_, err = DecodeFrom(42)
	require.True(t, errors.Is(err, ErrInvalidType))

	_, err = DecodeFrom("/this/path/does/not/exist.uu")
	require.True(t, errors.Is(err, ErrNotFound))
}
