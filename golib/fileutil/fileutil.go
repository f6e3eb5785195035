// Package fileutil opens dataset and artifact paths through an afero.Fs so that
// callers can swap the OS filesystem for an in-memory one.
package fileutil

import (
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

// GzipSuffix marks paths that are transparently (de)compressed.
const GzipSuffix = ".gz"

// OS is the filesystem used by the command line tools.
var OS = afero.NewOsFs()

// NamedWriteCloser is a file-like object extending io.WriteCloser with a string Name() similar to os.File.Name()
type NamedWriteCloser interface {
	io.WriteCloser
	Name() string
}

type gzipReadCloser struct {
	*gzip.Reader
	f afero.File
}

func (g gzipReadCloser) Close() error {
	return errors.Combine(g.Reader.Close(), g.f.Close())
}

// NewReader opens path on fs for reading. Paths ending in ".gz" are
// decompressed on the fly.
func NewReader(fs afero.Fs, path string) (io.ReadCloser, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s", path)
	}
	if !strings.HasSuffix(path, GzipSuffix) {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.WithKind(errors.KindInput, errors.Wrapf(err, "error reading gzip header of %s", path))
	}
	return gzipReadCloser{Reader: zr, f: f}, nil
}

type gzipWriteCloser struct {
	*gzip.Writer
	f afero.File
}

func (g gzipWriteCloser) Close() error {
	return errors.Combine(g.Writer.Close(), g.f.Close())
}

func (g gzipWriteCloser) Name() string {
	return g.f.Name()
}

// NewBufferedWriter creates path on fs, including any missing parent
// directories. Paths ending in ".gz" are compressed on the fly.
func NewBufferedWriter(fs afero.Fs, path string) (NamedWriteCloser, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "error creating directory %s", dir)
		}
	}
	f, err := fs.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating %s", path)
	}
	if !strings.HasSuffix(path, GzipSuffix) {
		return f, nil
	}
	return gzipWriteCloser{Writer: gzip.NewWriter(f), f: f}, nil
}

// ReadFile reads the contents of path on fs.
func ReadFile(fs afero.Fs, path string) ([]byte, error) {
	r, err := NewReader(fs, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", path)
	}
	return data, nil
}

// Exists reports whether path exists on fs.
func Exists(fs afero.Fs, path string) bool {
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}
