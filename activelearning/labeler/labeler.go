// Package labeler provides oracles that reveal the true label of a sample.
package labeler

import (
	"encoding/binary"
	"math"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/minio/highwayhash"
)

// ErrUnknownSample is returned when the oracle has never seen the queried vector.
var ErrUnknownSample = errors.New("sample not found in reference dataset")

// Labeler answers label queries, simulating a human annotator.
type Labeler interface {
	Label(x dataset.Vector) (int, error)
}

// hashKey is fixed so that lookups are reproducible across runs.
var hashKey = []byte("active-learning-ideal-labeler-32")

func vectorHash(x dataset.Vector) uint64 {
	buf := make([]byte, 8*len(x))
	for i, v := range x {
		if v == 0 {
			v = 0 // fold -0 into +0
		}
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return highwayhash.Sum64(buf, hashKey)
}

// IdealLabeler answers from a fully labeled copy of the pool. Lookup is by
// exact feature equality; when several reference entries share a vector the
// lowest index wins.
type IdealLabeler struct {
	ref     *dataset.Dataset
	buckets map[uint64][]int
}

// NewIdealLabeler indexes ref, which must be fully labeled. ref is cloned so
// later changes to it do not affect answers.
func NewIdealLabeler(ref *dataset.Dataset) (*IdealLabeler, error) {
	if ref.LenUnlabeled() > 0 {
		return nil, errors.Configf("reference dataset has %d pending entries", ref.LenUnlabeled())
	}
	ref = ref.Clone()
	l := &IdealLabeler{
		ref:     ref,
		buckets: make(map[uint64][]int, ref.Len()),
	}
	for i := 0; i < ref.Len(); i++ {
		x, err := ref.Features(i)
		if err != nil {
			return nil, err
		}
		h := vectorHash(x)
		l.buckets[h] = append(l.buckets[h], i)
	}
	return l, nil
}

// Label implements Labeler.
func (l *IdealLabeler) Label(x dataset.Vector) (int, error) {
	for _, i := range l.buckets[vectorHash(x)] {
		e, err := l.ref.Entry(i)
		if err != nil {
			return 0, err
		}
		if e.Features.Equal(x) {
			return e.Label, nil
		}
	}
	return 0, errors.WithKind(errors.KindConfig, ErrUnknownSample)
}
