package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/trivernis/pngme/png"
)

var (
	// ErrProtectedChunk is returned when adding or removing a chunk would break the file.
	ErrProtectedChunk = errors.New("refusing to remove IHDR or IEND chunk")
	// ErrReservedBit is returned for chunk types with a lowercase third letter.
	ErrReservedBit = errors.New("chunk type has the reserved bit set")
)

// Runner executes the commands against files on disk.
type Runner struct {
	Stdout io.Writer
	Log    *log.Logger
	// Progress receives progress bars for file reads and writes. Nil disables them.
	Progress io.Writer
	Password func() ([]byte, error)
}

type EncodeOptions struct {
	Path      string
	ChunkType string
	Message   string
	// Output is written instead of Path when set. It must not exist yet.
	Output  string
	Encrypt bool
}

type DecodeOptions struct {
	Path      string
	ChunkType string
	All       bool
	Decrypt   bool
}

type RemoveOptions struct {
	Path      string
	ChunkType string
}

type PrintOptions struct {
	Path string
	// ChunkType limits the listing to chunks of this type.
	ChunkType string
}

// Encode hides the message in a new chunk placed before IEND.
func (r *Runner) Encode(opts EncodeOptions) error {
	typ, err := png.ParseChunkType(opts.ChunkType)
	if err != nil {
		return err
	}
	if !typ.IsReservedBitValid() {
		return fmt.Errorf("%s: %w", typ, ErrReservedBit)
	}
	if typ == png.IHDR || typ == png.IEND {
		return fmt.Errorf("%s: %w", typ, ErrProtectedChunk)
	}
	if opts.Output != "" {
		if _, err := os.Stat(opts.Output); err == nil {
			return fmt.Errorf("%s: %w", opts.Output, ErrOutputExists)
		}
	}

	r.Log.Println("Reading image file...")
	file, err := r.loadFile(opts.Path)
	if err != nil {
		return err
	}

	data := []byte(opts.Message)
	if opts.Encrypt {
		password, err := r.Password()
		if err != nil {
			return err
		}
		r.Log.Println("Encrypting data...")
		if data, err = encryptMessage(password, data); err != nil {
			return err
		}
	}
	chunk := png.NewChunk(typ, data)
	r.Log.Printf("Creating %s...", chunk)
	file.AppendChunk(chunk)

	out := opts.Path
	if opts.Output != "" {
		out = opts.Output
	}
	r.Log.Printf("Writing %s...", out)
	if err := r.saveFile(out, file, opts.Output != ""); err != nil {
		return err
	}
	r.Log.Println("Finished!")
	return nil
}

// Decode prints the message of the first chunk of the given type, or of all
// of them with opts.All.
func (r *Runner) Decode(opts DecodeOptions) error {
	if _, err := png.ParseChunkType(opts.ChunkType); err != nil {
		return err
	}
	r.Log.Println("Reading image file...")
	file, err := r.loadFile(opts.Path)
	if err != nil {
		return err
	}

	var chunks []*png.Chunk
	if opts.All {
		chunks = file.ChunksByType(opts.ChunkType)
	} else if c := file.ChunkByType(opts.ChunkType); c != nil {
		chunks = append(chunks, c)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%s: %q: %w", opts.Path, opts.ChunkType, png.ErrChunkNotFound)
	}

	var password []byte
	if opts.Decrypt {
		if password, err = r.Password(); err != nil {
			return err
		}
	}
	for _, c := range chunks {
		msg, err := chunkMessage(c, password, opts.Decrypt)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Stdout, "Chunk: %s\nMessage: %s\n", c.Type(), msg)
	}
	return nil
}

func chunkMessage(c *png.Chunk, password []byte, decrypt bool) (string, error) {
	if !decrypt {
		return c.DataString()
	}
	data, err := decryptMessage(password, c.Data())
	if err != nil {
		return "", fmt.Errorf("chunk %s: %w", c.Type(), err)
	}
	return png.NewChunk(c.Type(), data).DataString()
}

// Remove deletes the first chunk of the given type and rewrites the file.
func (r *Runner) Remove(opts RemoveOptions) error {
	typ, err := png.ParseChunkType(opts.ChunkType)
	if err != nil {
		return err
	}
	if typ == png.IHDR || typ == png.IEND {
		return fmt.Errorf("%s: %w", typ, ErrProtectedChunk)
	}

	r.Log.Println("Reading image file...")
	file, err := r.loadFile(opts.Path)
	if err != nil {
		return err
	}
	removed, err := file.RemoveFirstChunk(opts.ChunkType)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Path, err)
	}
	r.Log.Printf("Removed %s", removed)

	r.Log.Printf("Writing %s...", opts.Path)
	if err := r.saveFile(opts.Path, file, false); err != nil {
		return err
	}
	r.Log.Println("Finished!")
	return nil
}

// Print lists the chunks of the file, one line each.
func (r *Runner) Print(opts PrintOptions) error {
	file, err := r.loadFile(opts.Path)
	if err != nil {
		return err
	}
	chunks := file.Chunks()
	if opts.ChunkType != "" {
		chunks = file.ChunksByType(opts.ChunkType)
	}
	for _, c := range chunks {
		fmt.Fprintf(r.Stdout, "chunk '%s' (%s, crc %08x) %s\n",
			c.Type(), humanize.Bytes(uint64(c.Length())), c.CRC(), properties(c.Type()))
	}
	return nil
}

func properties(t png.ChunkType) string {
	props := make([]string, 0, 4)
	if t.IsCritical() {
		props = append(props, "critical")
	} else {
		props = append(props, "ancillary")
	}
	if t.IsPublic() {
		props = append(props, "public")
	} else {
		props = append(props, "private")
	}
	if t.IsSafeToCopy() {
		props = append(props, "safe-to-copy")
	} else {
		props = append(props, "unsafe-to-copy")
	}
	if !t.IsReservedBitValid() {
		props = append(props, "reserved")
	}
	return strings.Join(props, " ")
}
