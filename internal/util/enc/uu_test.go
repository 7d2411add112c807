package enc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var encoderTests = [][]byte{
	[]byte("\000\000\000\000\377\377\377\377\125\125\125\125\252\252\252\252" +
		"\201\143\310\322\307\174\262\027\137\117\316\311\111\055\122\041" +
		"\141\251\161\040\045\263\006\163\346\330\104\060\171\120\127\277"),
	[]byte("Cat"),
	[]byte("a"),
	[]byte("ab"),
	{0x00},
	bytes.Repeat([]byte{0xff, 0x00, 0x7f}, 100),
}

func Test_UUEncodeLineKnownValues(t *testing.T) {
	encoder := UUEncoder{}

	line, err := encoder.EncodeLine([]byte("Cat"))
	require.NoError(t, err)
	require.Equal(t, "#0V%T", string(line))

	line, err = encoder.EncodeLine([]byte{0, 0, 0})
	require.NoError(t, err)
	require.Equal(t, "#    ", string(line), "zero must map to space, not backtick")

	line, err = encoder.EncodeLine([]byte{})
	require.NoError(t, err)
	require.Equal(t, " ", string(line))
}

func Test_UUEncodeLineLength(t *testing.T) {
	encoder := UUEncoder{}
	for n := 0; n <= MaxChunkLength; n++ {
		line, err := encoder.EncodeLine(bytes.Repeat([]byte{0xa5}, n))
		require.NoError(t, err)
		require.Equal(t, EncodedLength(n), len(line))
		require.Equal(t, byte(n+32), line[0])
		for _, c := range line {
			require.True(t, c >= 32 && c <= 95, "character %v out of range", c)
		}
	}

	_, err := encoder.EncodeLine(make([]byte, MaxChunkLength+1))
	require.True(t, errors.Is(err, ErrChunkTooLong))
}

func Test_UUDecodeLine(t *testing.T) {
	encoder := UUEncoder{}

	decoded, err := encoder.DecodeLine([]byte("#0V%T"))
	require.NoError(t, err)
	require.Equal(t, []byte("Cat"), decoded)

	// backtick is an alias for zero
	decoded, err = encoder.DecodeLine([]byte("#````"))
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0}, decoded)

	decoded, err = encoder.DecodeLine([]byte(" "))
	require.NoError(t, err)
	require.Empty(t, decoded)

	decoded, err = encoder.DecodeLine([]byte{})
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func Test_UUDecodeLineSkew(t *testing.T) {
	encoder := UUEncoder{}

	// trailing junk after the declared length is ignored
	decoded, err := encoder.DecodeLine([]byte("#0V%T0V%T    "))
	require.NoError(t, err)
	require.Equal(t, []byte("Cat"), decoded)

	// missing characters decode as zero
	decoded, err = encoder.DecodeLine([]byte("#0V"))
	require.NoError(t, err)
	require.Equal(t, 3, len(decoded))
	require.Equal(t, byte('C'), decoded[0])
}

func Test_UUDecodeLineErrors(t *testing.T) {
	encoder := UUEncoder{}

	_, err := encoder.DecodeLine([]byte("#0V%t"))
	require.True(t, errors.Is(err, ErrIllegalCharacter), "lowercase letters are not allowed")

	_, err = encoder.DecodeLine([]byte("#0V%\x1f"))
	require.True(t, errors.Is(err, ErrIllegalCharacter), "control characters are not allowed")

	_, err = encoder.DecodeLine([]byte("M" + strings.Repeat("A", 61)))
	require.True(t, errors.Is(err, ErrLineTooLong))

	_, err = encoder.DecodeLine([]byte("M" + strings.Repeat("A", 60)))
	require.NoError(t, err)
}

func Test_UUEncoder(t *testing.T) {
	for _, encoderTest := range encoderTests {
		encoder := UUEncoder{}
		encoded := encoder.Encode(encoderTest)
		require.NotContains(t, string(encoded), "`")
		require.Equal(t, EncodedSize(len(encoderTest)), len(encoded))

		lines := bytes.Split(bytes.TrimSuffix(encoded, []byte{'\n'}), []byte{'\n'})
		require.Equal(t, (len(encoderTest)+MaxChunkLength-1)/MaxChunkLength, len(lines))

		decoded := make([]byte, 0, len(encoderTest))
		for _, line := range lines {
			require.True(t, len(line) <= MaxLineLength)
			d, err := encoder.DecodeLine(line)
			require.NoError(t, err)
			decoded = append(decoded, d...)
		}
		require.Equal(t, encoderTest, decoded)
	}

	require.Empty(t, (&UUEncoder{}).Encode(nil))
	require.Equal(t, 0, EncodedSize(0))
}

func Test_UUDecodeWholeRange(t *testing.T) {
	all := make([]byte, 0, uuMaxCharacter-uuOffset+1)
	for c := uuOffset; c <= uuMaxCharacter; c++ {
		all = append(all, byte(c))
	}

	encoder := UUEncoder{}
	for _, line := range []string{"M" + string(all[1:61]), "!`", " "} {
		_, err := encoder.DecodeLine([]byte(line))
		require.NoError(t, err, "line %q", line)
	}
}
