package png

import "fmt"

// ChunkType is the four letter name of a chunk. The case of every letter
// carries one property bit.
type ChunkType [4]byte

var (
	IHDR = ChunkType{'I', 'H', 'D', 'R'}
	IDAT = ChunkType{'I', 'D', 'A', 'T'}
	IEND = ChunkType{'I', 'E', 'N', 'D'}
)

// ParseChunkType creates a chunk type from its string form, e.g. "ruSt".
func ParseChunkType(s string) (ChunkType, error) {
	var t ChunkType
	if len(s) != len(t) {
		return t, fmt.Errorf("%q: %w", s, ErrInvalidTypeLength)
	}
	copy(t[:], s)
	return ChunkTypeFromBytes(t)
}

// ChunkTypeFromBytes creates a chunk type from raw bytes.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isLetter(c) {
			return ChunkType{}, fmt.Errorf("%q: %w", b[:], ErrInvalidTypeByte)
		}
	}
	return ChunkType(b), nil
}

func isLetter(c byte) bool {
	return isUpper(c) || ('a' <= c && c <= 'z')
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

func (t ChunkType) Bytes() [4]byte {
	return t
}

func (t ChunkType) String() string {
	return string(t[:])
}

// IsCritical reports whether decoders must understand the chunk.
func (t ChunkType) IsCritical() bool {
	return isUpper(t[0])
}

// IsPublic reports whether the type is part of the png specification.
func (t ChunkType) IsPublic() bool {
	return isUpper(t[1])
}

func (t ChunkType) IsReservedBitValid() bool {
	return isUpper(t[2])
}

// IsSafeToCopy reports whether editors that don't know the chunk may keep it
// after modifying critical chunks.
func (t ChunkType) IsSafeToCopy() bool {
	return !isUpper(t[3])
}

// IsValid reports whether t may appear in a png file.
func (t ChunkType) IsValid() bool {
	for _, c := range t {
		if !isLetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}
