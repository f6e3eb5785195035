package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/PAL-UH/active-learning/golib/fileutil"
	"github.com/spf13/afero"
)

const maxLineBytes = 16 << 20

// FormatError reports a malformed line of a libsvm file.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("libsvm line %d: %s", e.Line, e.Msg)
}

func formatErrorf(line int, format string, args ...interface{}) error {
	return errors.WithKind(errors.KindInput, &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)})
}

type sparseRow struct {
	label int
	idxs  []int
	vals  []float64
}

// parseLabel accepts integral numeric labels such as "+1", "-1", "2" or "3.0".
func parseLabel(line int, tok string) (int, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, formatErrorf(line, "invalid label %q", tok)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, formatErrorf(line, "label %q is not an integer class", tok)
	}
	return int(f), nil
}

func parseRow(line int, text string) (sparseRow, error) {
	fields := strings.Fields(text)
	label, err := parseLabel(line, fields[0])
	if err != nil {
		return sparseRow{}, err
	}
	row := sparseRow{label: label}
	seen := make(map[int]struct{}, len(fields)-1)
	for _, tok := range fields[1:] {
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return sparseRow{}, formatErrorf(line, "expected index:value, got %q", tok)
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil || idx < 1 {
			return sparseRow{}, formatErrorf(line, "invalid feature index %q", parts[0])
		}
		if _, dup := seen[idx]; dup {
			return sparseRow{}, formatErrorf(line, "duplicate feature index %d", idx)
		}
		seen[idx] = struct{}{}
		val, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			return sparseRow{}, formatErrorf(line, "invalid feature value %q", parts[1])
		}
		row.idxs = append(row.idxs, idx-1)
		row.vals = append(row.vals, val)
	}
	return row, nil
}

// ReadLibSVM parses a fully labeled dataset in libsvm format: one sample per
// line, a label followed by 1-based index:value pairs. Blank lines and text
// after '#' are ignored. The dimension is the largest index seen; absent
// features are zero.
func ReadLibSVM(r io.Reader) (*Dataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var rows []sparseRow
	var dim, line int
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if pos := strings.IndexByte(text, '#'); pos >= 0 {
			text = text[:pos]
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		row, err := parseRow(line, text)
		if err != nil {
			return nil, err
		}
		for _, idx := range row.idxs {
			if idx+1 > dim {
				dim = idx + 1
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithKind(errors.KindInput, errors.Wrapf(err, "error scanning libsvm data"))
	}
	if len(rows) == 0 {
		return nil, errors.WithKind(errors.KindInput, errors.Wrapf(ErrEmpty, "no samples in libsvm data"))
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		x := make(Vector, dim)
		for j, idx := range row.idxs {
			x[idx] = row.vals[j]
		}
		entries[i] = Entry{Features: x, Label: row.label, Labeled: true}
	}
	return New(entries)
}

// LoadLibSVM reads a libsvm dataset from path on fs.
func LoadLibSVM(fs afero.Fs, path string) (*Dataset, error) {
	r, err := fileutil.NewReader(fs, path)
	if err != nil {
		return nil, errors.WithKind(errors.KindInput, err)
	}
	defer r.Close()

	ds, err := ReadLibSVM(r)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading %s", path)
	}
	return ds, nil
}

// WriteLibSVM writes a fully labeled dataset in libsvm format, omitting zero
// features.
func WriteLibSVM(w io.Writer, ds *Dataset) error {
	bw := bufio.NewWriter(w)
	for i, e := range ds.entries {
		if !e.Labeled {
			return errors.Configf("entry %d is pending and cannot be written as libsvm", i)
		}
		bw.WriteString(strconv.Itoa(e.Label))
		for j, v := range e.Features {
			if v == 0 {
				continue
			}
			fmt.Fprintf(bw, " %d:%s", j+1, strconv.FormatFloat(v, 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return errors.WrapfOrNil(bw.Flush(), "error writing libsvm data")
}

// SaveLibSVM writes ds to path on fs, creating parent directories.
func SaveLibSVM(fs afero.Fs, path string, ds *Dataset) (err error) {
	w, err := fileutil.NewBufferedWriter(fs, path)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, w.Close)
	return WriteLibSVM(w, ds)
}
