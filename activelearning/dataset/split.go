package dataset

import (
	"math"
	"math/rand"

	"github.com/PAL-UH/active-learning/golib/errors"
)

// DefaultSeed seeds the train/test permutation unless overridden.
const DefaultSeed = 42

// SplitOptions controls SplitTrainTest.
type SplitOptions struct {
	// TestSize is the fraction of samples assigned to the test set, in (0, 1).
	TestSize float64
	// NLabeled is the number of training samples that keep their label.
	NLabeled int
	// Seed seeds the permutation.
	Seed int64
}

// Split is the result of SplitTrainTest.
type Split struct {
	// Train holds the training samples, the first NLabeled labeled and the rest pending.
	Train *Dataset
	// Test holds the held-out samples, all labeled.
	Test *Dataset
	// TrainLabels are the true labels of Train in index order.
	TrainLabels []int
	// FullyLabeledTrain has the same vectors as Train, all labeled. It backs the oracle.
	FullyLabeledTrain *Dataset
}

// SplitTrainTest shuffles ds with a seeded permutation and splits it into a
// partially labeled training set and a fully labeled test set. The first
// ceil(TestSize*n) permuted samples go to the test set.
func SplitTrainTest(ds *Dataset, opts SplitOptions) (*Split, error) {
	if ds.LenUnlabeled() > 0 {
		return nil, errors.Configf("cannot split a dataset with %d pending entries", ds.LenUnlabeled())
	}
	if !(opts.TestSize > 0 && opts.TestSize < 1) {
		return nil, errors.Configf("test size must be in (0, 1), got %v", opts.TestSize)
	}

	n := ds.Len()
	nTest := int(math.Ceil(opts.TestSize * float64(n)))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, errors.Configf("test size %v leaves %d train and %d test samples out of %d", opts.TestSize, nTrain, nTest, n)
	}
	if opts.NLabeled < 0 || opts.NLabeled > nTrain {
		return nil, errors.Configf("cannot keep %d initial labels, training set has %d samples", opts.NLabeled, nTrain)
	}

	perm := rand.New(rand.NewSource(opts.Seed)).Perm(n)

	testEntries := make([]Entry, nTest)
	for i, idx := range perm[:nTest] {
		testEntries[i] = ds.entries[idx]
	}
	trainEntries := make([]Entry, nTrain)
	partial := make([]Entry, nTrain)
	labels := make([]int, nTrain)
	for i, idx := range perm[nTest:] {
		e := ds.entries[idx]
		trainEntries[i] = e
		labels[i] = e.Label
		partial[i] = Entry{Features: e.Features, Label: e.Label, Labeled: i < opts.NLabeled}
		if !partial[i].Labeled {
			partial[i].Label = 0
		}
	}

	test, err := New(testEntries)
	if err != nil {
		return nil, err
	}
	train, err := New(partial)
	if err != nil {
		return nil, err
	}
	full, err := New(trainEntries)
	if err != nil {
		return nil, err
	}
	return &Split{
		Train:             train,
		Test:              test,
		TrainLabels:       labels,
		FullyLabeledTrain: full,
	}, nil
}
