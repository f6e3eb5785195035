// Package dataset holds the pool of samples an active learner draws from.
//
// A Dataset is an ordered collection of feature vectors, each either labeled or
// pending. Indices are stable for the lifetime of a Dataset and feature vectors
// never change; the only mutation is RevealLabel, which moves one entry from
// pending to labeled.
package dataset

import (
	"sort"

	"github.com/PAL-UH/active-learning/golib/errors"
)

var (
	// ErrIndexOutOfRange is returned for indices outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrAlreadyLabeled is returned when revealing a different label for an entry that already has one.
	ErrAlreadyLabeled = errors.New("entry already labeled")
	// ErrDimensionMismatch is returned when feature vectors disagree in length.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
	// ErrEmpty is returned when a dataset would hold no entries.
	ErrEmpty = errors.New("empty dataset")
)

// Vector is a dense feature vector.
type Vector []float64

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// Equal reports whether v and w have identical length and components.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i] != w[i] {
			return false
		}
	}
	return true
}

// Entry is a feature vector together with its label state.
type Entry struct {
	Features Vector
	Label    int
	Labeled  bool
}

// Dataset is a pool of labeled and pending entries. It is not safe for
// concurrent use; the active learning loop is its only writer.
type Dataset struct {
	entries  []Entry
	dim      int
	nLabeled int
}

// New creates a dataset from entries. Feature vectors are copied.
func New(entries []Entry) (*Dataset, error) {
	if len(entries) == 0 {
		return nil, errors.WithKind(errors.KindInput, ErrEmpty)
	}
	ds := &Dataset{
		entries: make([]Entry, len(entries)),
		dim:     len(entries[0].Features),
	}
	for i, e := range entries {
		if len(e.Features) != ds.dim {
			return nil, errors.WithKind(errors.KindInput,
				errors.Wrapf(ErrDimensionMismatch, "entry %d has %d features, expected %d", i, len(e.Features), ds.dim))
		}
		ds.entries[i] = Entry{Features: e.Features.Clone(), Label: e.Label, Labeled: e.Labeled}
		if e.Labeled {
			ds.nLabeled++
		}
	}
	return ds, nil
}

// NewLabeled creates a fully labeled dataset.
func NewLabeled(X []Vector, y []int) (*Dataset, error) {
	if len(X) != len(y) {
		return nil, errors.Inputf("got %d feature vectors but %d labels", len(X), len(y))
	}
	entries := make([]Entry, len(X))
	for i := range X {
		entries[i] = Entry{Features: X[i], Label: y[i], Labeled: true}
	}
	return New(entries)
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Dim returns the length of every feature vector.
func (d *Dataset) Dim() int {
	return d.dim
}

// LenLabeled returns the number of labeled entries.
func (d *Dataset) LenLabeled() int {
	return d.nLabeled
}

// LenUnlabeled returns the number of pending entries.
func (d *Dataset) LenUnlabeled() int {
	return len(d.entries) - d.nLabeled
}

func (d *Dataset) check(i int) error {
	if i < 0 || i >= len(d.entries) {
		return errors.WithKind(errors.KindConfig, errors.Wrapf(ErrIndexOutOfRange, "index %d, dataset has %d entries", i, len(d.entries)))
	}
	return nil
}

// Entry returns a copy of the i-th entry.
func (d *Dataset) Entry(i int) (Entry, error) {
	if err := d.check(i); err != nil {
		return Entry{}, err
	}
	e := d.entries[i]
	e.Features = e.Features.Clone()
	return e, nil
}

// Features returns a copy of the i-th feature vector.
func (d *Dataset) Features(i int) (Vector, error) {
	if err := d.check(i); err != nil {
		return nil, err
	}
	return d.entries[i].Features.Clone(), nil
}

// Label returns the label of the i-th entry and whether it has been assigned.
// Out of range indices report no label.
func (d *Dataset) Label(i int) (int, bool) {
	if i < 0 || i >= len(d.entries) {
		return 0, false
	}
	e := d.entries[i]
	return e.Label, e.Labeled
}

// IsPending reports whether the i-th entry exists and has no label yet.
func (d *Dataset) IsPending(i int) bool {
	if i < 0 || i >= len(d.entries) {
		return false
	}
	return !d.entries[i].Labeled
}

// RevealLabel assigns label to the pending entry at index i. Revealing the
// same label again is a no-op; revealing a different one fails with
// ErrAlreadyLabeled. Feature vectors are never touched.
func (d *Dataset) RevealLabel(i, label int) error {
	if err := d.check(i); err != nil {
		return err
	}
	e := &d.entries[i]
	if e.Labeled {
		if e.Label == label {
			return nil
		}
		return errors.WithKind(errors.KindConfig,
			errors.Wrapf(ErrAlreadyLabeled, "entry %d has label %d, cannot reveal %d", i, e.Label, label))
	}
	e.Label = label
	e.Labeled = true
	d.nLabeled++
	return nil
}

// LabeledEntries returns the features and labels of all labeled entries in
// index order. The vectors are shared with the dataset and must not be modified.
func (d *Dataset) LabeledEntries() ([]Vector, []int) {
	X := make([]Vector, 0, d.nLabeled)
	y := make([]int, 0, d.nLabeled)
	for _, e := range d.entries {
		if e.Labeled {
			X = append(X, e.Features)
			y = append(y, e.Label)
		}
	}
	return X, y
}

// UnlabeledEntries returns the indices and features of all pending entries in
// index order. The vectors are shared with the dataset and must not be modified.
func (d *Dataset) UnlabeledEntries() ([]int, []Vector) {
	n := d.LenUnlabeled()
	idxs := make([]int, 0, n)
	X := make([]Vector, 0, n)
	for i, e := range d.entries {
		if !e.Labeled {
			idxs = append(idxs, i)
			X = append(X, e.Features)
		}
	}
	return idxs, X
}

// Classes returns the distinct labels among labeled entries in ascending order.
func (d *Dataset) Classes() []int {
	seen := make(map[int]struct{})
	var classes []int
	for _, e := range d.entries {
		if !e.Labeled {
			continue
		}
		if _, ok := seen[e.Label]; !ok {
			seen[e.Label] = struct{}{}
			classes = append(classes, e.Label)
		}
	}
	sort.Ints(classes)
	return classes
}

// ClassCounts returns the number of labeled entries per label.
func (d *Dataset) ClassCounts() map[int]int {
	counts := make(map[int]int)
	for _, e := range d.entries {
		if e.Labeled {
			counts[e.Label]++
		}
	}
	return counts
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		entries:  make([]Entry, len(d.entries)),
		dim:      d.dim,
		nLabeled: d.nLabeled,
	}
	for i, e := range d.entries {
		c.entries[i] = Entry{Features: e.Features.Clone(), Label: e.Label, Labeled: e.Labeled}
	}
	return c
}
