package fileutil

import (
	"io"
	"io/ioutil"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path, contents string) {
	w, err := NewBufferedWriter(fs, path)
	require.NoError(t, err)
	_, err = io.WriteString(w, contents)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestNewReader(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "data/toy.txt", "1 1:0.5\n")

	r, err := NewReader(fs, "data/toy.txt")
	require.NoError(t, err)
	defer r.Close()
	buf, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "1 1:0.5\n", string(buf))

	_, err = NewReader(fs, "data/missing.txt")
	assert.Error(t, err)
}

func TestGzipRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "out/train.txt.gz", "-1 2:1\n+1 1:1\n")

	raw, err := afero.ReadFile(fs, "out/train.txt.gz")
	require.NoError(t, err)
	assert.NotEqual(t, "-1 2:1\n+1 1:1\n", string(raw))

	buf, err := ReadFile(fs, "out/train.txt.gz")
	require.NoError(t, err)
	assert.Equal(t, "-1 2:1\n+1 1:1\n", string(buf))
}

func TestNewReaderBadGzip(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.txt.gz", []byte("not gzip"), 0644))

	_, err := NewReader(fs, "bad.txt.gz")
	assert.Error(t, err)
}

func TestNewBufferedWriterCreatesParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "vis/nested/svm.png", "png")
	assert.True(t, Exists(fs, "vis/nested/svm.png"))
	assert.False(t, Exists(fs, "vis/other.png"))
}
