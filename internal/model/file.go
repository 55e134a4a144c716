package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// UnknownSize marks a file or transfer whose byte count cannot be determined up front.
const UnknownSize int64 = -1

// ErrNoContent is returned by Open when a SelectedFile has no content handle.
var ErrNoContent = errors.New("selected file has no content")

// SelectedFile is one file chosen for upload. Name is the registry key.
type SelectedFile struct {
	Name string // file name sent to the server, unique within a registry
	Size int64  // size in bytes, UnknownSize if the source cannot tell
	Path string // local path when the file came from disk, empty otherwise

	open func() (io.ReadCloser, error)
}

// NewFileFromPath stats a local file and returns a handle that reopens it on demand
func NewFileFromPath(path string) (SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SelectedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return SelectedFile{}, fmt.Errorf("%s is a directory", path)
	}

	return SelectedFile{
		Name: filepath.Base(path),
		Size: info.Size(),
		Path: path,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// NewFileFromBytes wraps in-memory content
func NewFileFromBytes(name string, data []byte) SelectedFile {
	return SelectedFile{
		Name: name,
		Size: int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// NewFileFromReader wraps an arbitrary content source. Pass UnknownSize when the
// length is not known; uploads of such files report indeterminate progress.
func NewFileFromReader(name string, size int64, open func() (io.ReadCloser, error)) SelectedFile {
	if size < 0 {
		size = UnknownSize
	}
	return SelectedFile{Name: name, Size: size, open: open}
}

// Open returns a fresh reader over the file content
func (f SelectedFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, ErrNoContent
	}
	return f.open()
}

// SizeKnown reports whether Size holds a real byte count
func (f SelectedFile) SizeKnown() bool {
	return f.Size >= 0
}
