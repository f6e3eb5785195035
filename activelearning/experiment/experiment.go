package experiment

import (
	"context"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/activelearning/labeler"
	"github.com/PAL-UH/active-learning/activelearning/models"
	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/PAL-UH/active-learning/golib/fileutil"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Prepare loads and splits the dataset named by cfg and builds the
// collaborators of a run.
func Prepare(fs afero.Fs, cfg Config) (Setup, error) {
	if err := cfg.Validate(); err != nil {
		return Setup{}, err
	}
	if !fileutil.Exists(fs, cfg.Dataset) {
		return Setup{}, errors.Inputf("dataset %s does not exist", cfg.Dataset)
	}
	ds, err := dataset.LoadLibSVM(fs, cfg.Dataset)
	if err != nil {
		return Setup{}, err
	}
	split, err := dataset.SplitTrainTest(ds, dataset.SplitOptions{
		TestSize: cfg.TestSize,
		NLabeled: cfg.NLabeled,
		Seed:     cfg.Seed,
	})
	if err != nil {
		return Setup{}, err
	}

	lbr, err := labeler.NewIdealLabeler(split.FullyLabeledTrain)
	if err != nil {
		return Setup{}, err
	}
	model, err := models.New(cfg.Model)
	if err != nil {
		return Setup{}, err
	}
	qs, err := cfg.strategy()
	if err != nil {
		return Setup{}, err
	}

	return Setup{
		Train:    split.Train,
		Test:     split.Test,
		Labeler:  lbr,
		Model:    model,
		Strategy: qs,
		Quota:    cfg.Quota,
	}, nil
}

// Experiment runs the experiment described by cfg.
func Experiment(ctx context.Context, fs afero.Fs, cfg Config, opts ...Option) (*Result, error) {
	setup, err := Prepare(fs, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "preparing experiment")
	}
	o := runOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger.Info("starting experiment",
		zap.String("dataset", cfg.Dataset),
		zap.Int("train", setup.Train.Len()),
		zap.Int("test", setup.Test.Len()),
		zap.Int("labeled", setup.Train.LenLabeled()),
		zap.Int("quota", cfg.Quota),
		zap.String("model", cfg.Model),
		zap.String("strategy", cfg.Strategy))

	return Run(ctx, setup, opts...)
}
