package enc

import (
	"github.com/pkg/errors"
)

const (
	// MaxChunkLength is the maximum number of raw bytes carried by one encoded line
	MaxChunkLength = 45
	// MaxLineLength is the length character plus 60 data characters
	MaxLineLength = 61

	uuOffset       = 32
	uuMaxCharacter = 96
	rawGroup       = 3
	encodedGroup   = 4
)

var (
	// ErrIllegalCharacter is returned when an encoded line contains a byte outside of ASCII 32-96
	ErrIllegalCharacter = errors.New("invalid ascii character, characters should have ascii codes ranging from 32 to 96")
	// ErrLineTooLong is returned when an encoded line is longer than MaxLineLength
	ErrLineTooLong = errors.New("line is larger than the maximum allowed for a line of uuencoded data")
	// ErrChunkTooLong is returned when EncodeLine gets more than MaxChunkLength bytes
	ErrChunkTooLong = errors.New("chunk is larger than the maximum allowed for a line of uuencoded data")
)

// UUEncoder packs every 3 bytes into 4 characters from the ASCII range 32-95 and
// prefixes each line with a character describing the number of raw bytes on it.
type UUEncoder struct {
}

// EncodedLength returns the length of the line EncodeLine produces for n raw bytes,
// excluding the line terminator.
func EncodedLength(n int) int {
	return 1 + (n+rawGroup-1)/rawGroup*encodedGroup
}

// EncodeLine encodes up to 45 bytes into a single line. The result does not contain
// the line terminator.
func (b *UUEncoder) EncodeLine(chunk []byte) ([]byte, error) {
	if len(chunk) > MaxChunkLength {
		return nil, errors.Wrapf(ErrChunkTooLong, "chunk of %d bytes", len(chunk))
	}
	return b.appendLine(make([]byte, 0, EncodedLength(len(chunk))), chunk), nil
}

func (b *UUEncoder) appendLine(dst, chunk []byte) []byte {
	dst = append(dst, byte(len(chunk)+uuOffset))

	for i := 0; i < len(chunk); i += rawGroup {
		var group [rawGroup]byte
		copy(group[:], chunk[i:])

		dst = append(dst,
			group[0]>>2+uuOffset,
			(group[0]<<4|group[1]>>4)&0x3f+uuOffset,
			(group[1]<<2|group[2]>>6)&0x3f+uuOffset,
			group[2]&0x3f+uuOffset,
		)
	}

	return dst
}

// DecodeLine is the reverse of EncodeLine. The declared length (first character)
// drives the decoding: surplus characters after the ones required are ignored and
// missing characters decode as zero bits.
func (b *UUEncoder) DecodeLine(line []byte) ([]byte, error) {
	if len(line) > MaxLineLength {
		return nil, errors.Wrapf(ErrLineTooLong, "length of %d", len(line))
	}
	for i, c := range line {
		if c < uuOffset || c > uuMaxCharacter {
			return nil, errors.Wrapf(ErrIllegalCharacter, "character %#02x at offset %d", c, i)
		}
	}
	if len(line) == 0 {
		return []byte{}, nil
	}

	n := int(line[0]-uuOffset) & 0x3f
	data := line[1:]
	dst := make([]byte, 0, n)

	for i := 0; len(dst) < n; i += encodedGroup {
		var group [encodedGroup]byte
		for k := range group {
			if i+k < len(data) {
				group[k] = (data[i+k] - uuOffset) & 0x3f
			}
		}

		decoded := [rawGroup]byte{
			group[0]<<2 | group[1]>>4,
			group[1]<<4 | group[2]>>2,
			group[2]<<6 | group[3],
		}

		remaining := n - len(dst)
		if remaining > rawGroup {
			remaining = rawGroup
		}
		dst = append(dst, decoded[:remaining]...)
	}

	return dst, nil
}

// Encode splits src into 45-byte chunks and encodes every chunk on its own line,
// each followed by a newline.
func (b *UUEncoder) Encode(src []byte) []byte {
	dst := make([]byte, 0, EncodedSize(len(src)))
	for i := 0; i < len(src); i += MaxChunkLength {
		end := i + MaxChunkLength
		if end > len(src) {
			end = len(src)
		}
		dst = b.appendLine(dst, src[i:end])
		dst = append(dst, '\n')
	}
	return dst
}

// EncodedSize returns the size of the Encode output for n raw bytes, line terminators included
func EncodedSize(n int) int {
	full := n / MaxChunkLength
	size := full * (EncodedLength(MaxChunkLength) + 1)
	if rest := n % MaxChunkLength; rest > 0 {
		size += EncodedLength(rest) + 1
	}
	return size
}
