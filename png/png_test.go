package png

import (
	"bytes"
	"errors"
	"testing"
)

func testChunks(t *testing.T) []*Chunk {
	t.Helper()
	ihdr := []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0}
	return []*Chunk{
		NewChunk(IHDR, ihdr),
		NewChunk(IDAT, []byte{0x78, 0x9C, 0x63, 0x60, 0x00, 0x00, 0x00, 0x02, 0x00, 0x01}),
		NewChunk(IEND, nil),
	}
}

func testFileBytes(t *testing.T, chunks []*Chunk) []byte {
	t.Helper()
	b := append([]byte{}, Signature[:]...)
	for _, c := range chunks {
		b = append(b, c.Bytes()...)
	}
	return b
}

func chunkNames(f *File) []string {
	var names []string
	for _, c := range f.Chunks() {
		names = append(names, c.Type().String())
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFromBytesRoundTrip(t *testing.T) {
	chunks := testChunks(t)
	chunks = append(chunks[:2], NewChunk(mustType(t, "ruSt"), nil), NewChunk(mustType(t, "tEXt"), []byte("Comment\x00hi")), chunks[2])
	b := testFileBytes(t, chunks)

	f, err := FromBytes(b)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if len(f.Chunks()) != len(chunks) {
		t.Fatalf("chunks=%d want %d", len(f.Chunks()), len(chunks))
	}
	for i, c := range f.Chunks() {
		if !c.Equal(chunks[i]) {
			t.Fatalf("chunk[%d]=%s want %s", i, c, chunks[i])
		}
	}
	if !bytes.Equal(f.Bytes(), b) {
		t.Fatalf("Bytes differs from input")
	}

	var buf bytes.Buffer
	n, err := f.WriteTo(&buf)
	if err != nil || n != int64(len(b)) || !bytes.Equal(buf.Bytes(), b) {
		t.Fatalf("WriteTo n=%d err=%v", n, err)
	}

	r, err := Read(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(r.Bytes(), b) {
		t.Fatalf("Read round trip differs")
	}
}

func TestFromBytesErrors(t *testing.T) {
	valid := testFileBytes(t, testChunks(t))
	noIEND := testFileBytes(t, testChunks(t)[:2])
	badCRC := append([]byte{}, valid...)
	badCRC[len(Signature)+8] ^= 0x01

	cases := []struct {
		name string
		in   []byte
		want error
	}{
		{name: "empty", in: nil, want: ErrBadSignature},
		{name: "short signature", in: Signature[:7], want: ErrBadSignature},
		{name: "wrong signature", in: append([]byte{0x88}, valid[1:]...), want: ErrBadSignature},
		{name: "signature only", in: Signature[:], want: ErrNoIEND},
		{name: "no IEND", in: noIEND, want: ErrNoIEND},
		{name: "trailing garbage", in: append(append([]byte{}, valid...), 0x00), want: ErrTrailingGarbage},
		{name: "chunk after IEND", in: append(append([]byte{}, valid...), NewChunk(mustType(t, "ruSt"), nil).Bytes()...), want: ErrTrailingGarbage},
		{name: "truncated", in: valid[:len(valid)-1], want: ErrTruncated},
		{name: "crc", in: badCRC, want: ErrCRCMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromBytes(tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
		})
	}
}

func TestAppendChunk(t *testing.T) {
	f, err := FromBytes(testFileBytes(t, testChunks(t)))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	c := NewChunk(mustType(t, "ruSt"), []byte("hello"))
	f.AppendChunk(c)

	if got, want := chunkNames(f), []string{"IHDR", "IDAT", "ruSt", "IEND"}; !equalNames(got, want) {
		t.Fatalf("chunks=%v want %v", got, want)
	}
	if found := f.ChunkByType("ruSt"); found == nil || !found.Equal(c) {
		t.Fatalf("ChunkByType=%v", found)
	}

	second := NewChunk(mustType(t, "ruSt"), []byte("world"))
	f.AppendChunk(second)
	if got, want := chunkNames(f), []string{"IHDR", "IDAT", "ruSt", "ruSt", "IEND"}; !equalNames(got, want) {
		t.Fatalf("chunks=%v want %v", got, want)
	}
	if found := f.ChunkByType("ruSt"); !found.Equal(c) {
		t.Fatalf("ChunkByType returned %s, want the first one", found)
	}
	if all := f.ChunksByType("ruSt"); len(all) != 2 || !all[1].Equal(second) {
		t.Fatalf("ChunksByType=%v", all)
	}

	if _, err := FromBytes(f.Bytes()); err != nil {
		t.Fatalf("appended file does not parse: %v", err)
	}
}

func TestAppendChunkWithoutIEND(t *testing.T) {
	f := FromChunks(testChunks(t)[:2])
	f.AppendChunk(NewChunk(mustType(t, "ruSt"), nil))
	if got, want := chunkNames(f), []string{"IHDR", "IDAT", "ruSt"}; !equalNames(got, want) {
		t.Fatalf("chunks=%v want %v", got, want)
	}

	empty := FromChunks(nil)
	empty.AppendChunk(NewChunk(IEND, nil))
	if got, want := chunkNames(empty), []string{"IEND"}; !equalNames(got, want) {
		t.Fatalf("chunks=%v want %v", got, want)
	}
}

func TestFromChunksOwnsList(t *testing.T) {
	chunks := testChunks(t)
	f := FromChunks(chunks[:2])
	f.AppendChunk(NewChunk(mustType(t, "ruSt"), nil))
	if chunks[2].Type() != IEND {
		t.Fatalf("caller slice modified: chunks[2]=%s", chunks[2])
	}
	if _, err := f.RemoveFirstChunk("IHDR"); err != nil {
		t.Fatalf("RemoveFirstChunk: %v", err)
	}
	if chunks[0].Type() != IHDR || chunks[1].Type() != IDAT {
		t.Fatalf("caller slice modified: %s %s", chunks[0], chunks[1])
	}
}

func TestChunkByTypeMissing(t *testing.T) {
	f := FromChunks(testChunks(t))
	if c := f.ChunkByType("ruSt"); c != nil {
		t.Fatalf("ChunkByType=%s want nil", c)
	}
	if c := f.ChunksByType("ruSt"); len(c) != 0 {
		t.Fatalf("ChunksByType=%v want none", c)
	}
}

func TestRemoveFirstChunk(t *testing.T) {
	first := NewChunk(mustType(t, "ruSt"), []byte("one"))
	second := NewChunk(mustType(t, "ruSt"), []byte("two"))
	chunks := testChunks(t)
	f := FromChunks([]*Chunk{chunks[0], first, chunks[1], second, chunks[2]})

	removed, err := f.RemoveFirstChunk("ruSt")
	if err != nil {
		t.Fatalf("RemoveFirstChunk: %v", err)
	}
	if !removed.Equal(first) {
		t.Fatalf("removed=%s want %s", removed, first)
	}
	if got, want := chunkNames(f), []string{"IHDR", "IDAT", "ruSt", "IEND"}; !equalNames(got, want) {
		t.Fatalf("chunks=%v want %v", got, want)
	}
	if !f.ChunkByType("ruSt").Equal(second) {
		t.Fatalf("remaining ruSt is not the second one")
	}

	if _, err := f.RemoveFirstChunk("ruSt"); err != nil {
		t.Fatalf("RemoveFirstChunk: %v", err)
	}
	if _, err := f.RemoveFirstChunk("ruSt"); !errors.Is(err, ErrChunkNotFound) {
		t.Fatalf("err=%v want %v", err, ErrChunkNotFound)
	}
	if got, want := chunkNames(f), []string{"IHDR", "IDAT", "IEND"}; !equalNames(got, want) {
		t.Fatalf("chunks=%v want %v", got, want)
	}
}
