package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/golib/cmdline"
	"github.com/PAL-UH/active-learning/golib/fileutil"
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

type splitArgs struct {
	Input    string  `arg:"positional,required,help:libsvm dataset"`
	Train    string  `arg:"positional,required,help:output path for the training set"`
	Test     string  `arg:"positional,required,help:output path for the test set"`
	TestSize float64 `arg:"--test-size,help:fraction of samples held out for testing"`
	Seed     int64   `arg:"help:permutation seed"`

	fs  afero.Fs  `arg:"-"`
	out io.Writer `arg:"-"`
}

func (a *splitArgs) Handle() error {
	ds, err := dataset.LoadLibSVM(a.fs, a.Input)
	if err != nil {
		return err
	}
	split, err := dataset.SplitTrainTest(ds, dataset.SplitOptions{TestSize: a.TestSize, Seed: a.Seed})
	if err != nil {
		return err
	}
	if err := dataset.SaveLibSVM(a.fs, a.Train, split.FullyLabeledTrain); err != nil {
		return err
	}
	if err := dataset.SaveLibSVM(a.fs, a.Test, split.Test); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s training samples to %s and %s test samples to %s\n",
		humanize.Comma(int64(split.Train.Len())), a.Train,
		humanize.Comma(int64(split.Test.Len())), a.Test)
	return nil
}

type describeArgs struct {
	Input string `arg:"positional,required,help:libsvm dataset"`

	fs  afero.Fs  `arg:"-"`
	out io.Writer `arg:"-"`
}

func (a *describeArgs) Handle() error {
	ds, err := dataset.LoadLibSVM(a.fs, a.Input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "samples: %s\n", humanize.Comma(int64(ds.Len())))
	fmt.Fprintf(a.out, "dimension: %d\n", ds.Dim())

	counts := ds.ClassCounts()
	classes := make([]int, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Ints(classes)
	for _, c := range classes {
		n := counts[c]
		fmt.Fprintf(a.out, "class %d: %s (%.1f%%)\n", c, humanize.Comma(int64(n)), 100*float64(n)/float64(ds.Len()))
	}
	return nil
}

func commands(fs afero.Fs, out io.Writer) []cmdline.Command {
	return []cmdline.Command{
		{
			Name:     "split",
			Synopsis: "split a libsvm dataset into train and test files",
			Args:     &splitArgs{TestSize: 0.5, Seed: dataset.DefaultSeed, fs: fs, out: out},
		},
		{
			Name:     "describe",
			Synopsis: "print sample count, dimension and class histogram",
			Args:     &describeArgs{fs: fs, out: out},
		},
	}
}

func main() {
	cmdline.MustDispatch(commands(fileutil.OS, os.Stdout)...)
}
