// Package png reads and writes the chunk structure of png files without
// decoding any image data.
package png

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
)

// Signature is the header every png file starts with.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// File is a png signature followed by an ordered list of chunks.
type File struct {
	chunks []*Chunk
}

// FromBytes parses a complete png file.
func FromBytes(b []byte) (*File, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrBadSignature
	}

	f := &File{}
	offset := len(Signature)
	for offset < len(b) {
		c, n, err := ParseChunk(b[offset:])
		if err != nil {
			return nil, fmt.Errorf("chunk #%d at offset %d: %w", len(f.chunks), offset, err)
		}
		f.chunks = append(f.chunks, c)
		offset += n
		if c.typ == IEND {
			break
		}
	}

	if len(f.chunks) == 0 || f.chunks[len(f.chunks)-1].typ != IEND {
		return nil, ErrNoIEND
	}
	if offset != len(b) {
		return nil, fmt.Errorf("%d bytes at offset %d: %w", len(b)-offset, offset, ErrTrailingGarbage)
	}
	return f, nil
}

// Read parses a png file from r. The whole stream is read into memory.
func Read(r io.Reader) (*File, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromBytes(b)
}

// FromChunks wraps a copy of the chunk list without validating it.
func FromChunks(chunks []*Chunk) *File {
	return &File{chunks: append([]*Chunk(nil), chunks...)}
}

// Chunks returns the chunks in file order.
func (f *File) Chunks() []*Chunk {
	return f.chunks
}

// AppendChunk inserts c right before the IEND chunk, or at the end if the
// file has none.
func (f *File) AppendChunk(c *Chunk) {
	n := len(f.chunks)
	if n == 0 || f.chunks[n-1].typ != IEND {
		f.chunks = append(f.chunks, c)
		return
	}
	f.chunks = append(f.chunks, nil)
	copy(f.chunks[n:], f.chunks[n-1:n])
	f.chunks[n-1] = c
}

// ChunkByType returns the first chunk named name, nil if there is none.
func (f *File) ChunkByType(name string) *Chunk {
	if i := f.index(name); i >= 0 {
		return f.chunks[i]
	}
	return nil
}

// ChunksByType returns all chunks named name in file order.
func (f *File) ChunksByType(name string) []*Chunk {
	var found []*Chunk
	for _, c := range f.chunks {
		if c.typ.String() == name {
			found = append(found, c)
		}
	}
	return found
}

// RemoveFirstChunk removes the first chunk named name and returns it.
// Removing IHDR or IEND is allowed but leaves a broken file.
func (f *File) RemoveFirstChunk(name string) (*Chunk, error) {
	i := f.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrChunkNotFound)
	}
	c := f.chunks[i]
	f.chunks = append(f.chunks[:i], f.chunks[i+1:]...)
	return c, nil
}

func (f *File) index(name string) int {
	for i, c := range f.chunks {
		if c.typ.String() == name {
			return i
		}
	}
	return -1
}

// Bytes serializes the signature and all chunks.
func (f *File) Bytes() []byte {
	size := len(Signature)
	for _, c := range f.chunks {
		size += chunkOverhead + len(c.data)
	}
	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, c := range f.chunks {
		buf = c.appendTo(buf)
	}
	return buf
}

// WriteTo writes the serialized file to w in a single write.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}
