package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/trivernis/pngme/png"
)

// ErrOutputExists is returned when encode would overwrite an existing output file.
var ErrOutputExists = errors.New("output file already exists")

// IOError wraps a failed file operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// starts a byte progress bar on r.Progress
func (r *Runner) startBar(total int64) *pb.ProgressBar {
	bar := pb.New64(total)
	bar.Set(pb.Bytes, true)
	bar.SetWriter(r.Progress)
	return bar.Start()
}

// reads the whole file at path and parses it as png
func (r *Runner) loadFile(path string) (*png.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	var in io.Reader = f
	if r.Progress != nil {
		stat, err := f.Stat()
		if err != nil {
			return nil, &IOError{Op: "stat", Path: path, Err: err}
		}
		bar := r.startBar(stat.Size())
		defer bar.Finish()
		in = bar.NewProxyReader(f)
	}

	data, err := ioutil.ReadAll(in)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	file, err := png.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// writes the serialized png to path. With exclusive set an existing file is
// never replaced.
func (r *Runner) saveFile(path string, file *png.File, exclusive bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if exclusive && os.IsExist(err) {
			return fmt.Errorf("%s: %w", path, ErrOutputExists)
		}
		return &IOError{Op: "create", Path: path, Err: err}
	}

	data := file.Bytes()
	var w io.Writer = out
	if r.Progress != nil {
		bar := r.startBar(int64(len(data)))
		defer bar.Finish()
		w = bar.NewProxyWriter(out)
	}
	if _, err := w.Write(data); err != nil {
		out.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}
