package png

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// MaxLength is the largest data length a chunk may declare.
const MaxLength = 1<<31 - 1

// length, type and crc fields
const chunkOverhead = 4 + 4 + 4

// Chunk is a single png chunk: length, type, data and crc.
type Chunk struct {
	length uint32
	typ    ChunkType
	data   []byte
	crc    uint32
}

// NewChunk creates a chunk with the given type and data.
func NewChunk(typ ChunkType, data []byte) *Chunk {
	return &Chunk{
		length: uint32(len(data)),
		typ:    typ,
		data:   append([]byte{}, data...),
		crc:    Checksum(typ[:], data),
	}
}

// ParseChunk reads one chunk from the beginning of b and returns it together
// with the number of bytes it occupied.
func ParseChunk(b []byte) (*Chunk, int, error) {
	if len(b) < chunkOverhead {
		return nil, 0, fmt.Errorf("chunk header needs %d bytes, got %d: %w", chunkOverhead, len(b), ErrTruncated)
	}
	length := binary.BigEndian.Uint32(b[0:4])
	if length > MaxLength {
		return nil, 0, fmt.Errorf("chunk length %d exceeds %d: %w", length, MaxLength, ErrTruncated)
	}
	if int64(len(b)) < chunkOverhead+int64(length) {
		return nil, 0, fmt.Errorf("chunk needs %d bytes, got %d: %w", chunkOverhead+int64(length), len(b), ErrTruncated)
	}
	end := 8 + int(length)

	var raw [4]byte
	copy(raw[:], b[4:8])
	typ, err := ChunkTypeFromBytes(raw)
	if err != nil {
		return nil, 0, invalidTypeError{err}
	}

	data := make([]byte, length)
	copy(data, b[8:end])
	crc := binary.BigEndian.Uint32(b[end : end+4])
	if sum := Checksum(typ[:], data); sum != crc {
		return nil, 0, fmt.Errorf("chunk %s: got %08x, computed %08x: %w", typ, crc, sum, ErrCRCMismatch)
	}

	return &Chunk{
		length: length,
		typ:    typ,
		data:   data,
		crc:    crc,
	}, end + 4, nil
}

func (c *Chunk) Length() uint32 {
	return c.length
}

func (c *Chunk) Type() ChunkType {
	return c.typ
}

func (c *Chunk) Data() []byte {
	return c.data
}

func (c *Chunk) CRC() uint32 {
	return c.crc
}

// DataString returns the chunk data as text.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("chunk %s: %w", c.typ, ErrNotUTF8)
	}
	return string(c.data), nil
}

// Bytes serializes the chunk in its wire layout.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, 0, chunkOverhead+len(c.data))
	return c.appendTo(buf)
}

func (c *Chunk) appendTo(buf []byte) []byte {
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], c.length)
	buf = append(buf, word[:]...)
	buf = append(buf, c.typ[:]...)
	buf = append(buf, c.data...)
	binary.BigEndian.PutUint32(word[:], c.crc)
	return append(buf, word[:]...)
}

// Equal reports whether both chunks have the same fields.
func (c *Chunk) Equal(o *Chunk) bool {
	return c.length == o.length && c.typ == o.typ && c.crc == o.crc && bytes.Equal(c.data, o.data)
}

func (c *Chunk) String() string {
	return fmt.Sprintf("chunk '%s' (%d bytes, crc %08x)", c.typ, c.length, c.crc)
}
