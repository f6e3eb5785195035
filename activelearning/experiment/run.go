package experiment

import (
	"context"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/activelearning/labeler"
	"github.com/PAL-UH/active-learning/activelearning/models"
	"github.com/PAL-UH/active-learning/activelearning/querystrategies"
	"github.com/PAL-UH/active-learning/golib/errors"
	"github.com/PAL-UH/active-learning/golib/kitelog"
	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"
	"go.uber.org/zap"
)

// Setup holds the collaborators of a run. Train is mutated in place.
type Setup struct {
	Train    *dataset.Dataset
	Test     *dataset.Dataset
	Labeler  labeler.Labeler
	Model    models.Model
	Strategy querystrategies.QueryStrategy
	Quota    int
}

// Result holds one value per query, in query order.
type Result struct {
	EIn      []float64
	EOut     []float64
	Accuracy []float64
	// Queried are the training indices sent to the labeler.
	Queried []int
	// Labels are the labels revealed for Queried.
	Labels []int
}

// Len returns the number of completed queries.
func (r *Result) Len() int {
	return len(r.Accuracy)
}

type runOptions struct {
	logger   *zap.Logger
	progress string
}

// Option configures Run.
type Option func(*runOptions)

// WithLogger logs every query at debug level. A nil logger discards output.
func WithLogger(l *zap.Logger) Option {
	return func(o *runOptions) {
		o.logger = kitelog.OrNop(l)
	}
}

// WithProgress draws a progress bar over the quota on stderr.
func WithProgress(desc string) Option {
	return func(o *runOptions) {
		o.progress = desc
	}
}

// Run performs s.Quota rounds of query, label, reveal, retrain and evaluate.
// The first failure aborts the run.
func Run(ctx context.Context, s Setup, opts ...Option) (*Result, error) {
	o := runOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if s.Quota < 0 {
		return nil, errors.Configf("quota must not be negative, got %d", s.Quota)
	}

	res := &Result{
		EIn:      make([]float64, 0, s.Quota),
		EOut:     make([]float64, 0, s.Quota),
		Accuracy: make([]float64, 0, s.Quota),
		Queried:  make([]int, 0, s.Quota),
		Labels:   make([]int, 0, s.Quota),
	}

	step := func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.query(res, o.logger); err != nil {
			return errors.Wrapf(err, "query %d of %d", i+1, s.Quota)
		}
		return nil
	}

	if o.progress == "" {
		for i := 0; i < s.Quota; i++ {
			if err := step(i); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	var stepErr error
	err := tqdm.With(iterators.Interval(0, s.Quota), o.progress, func(v interface{}) (brk bool) {
		stepErr = step(v.(int))
		return stepErr != nil
	})
	if stepErr != nil {
		return nil, stepErr
	}
	if err != nil {
		return nil, errors.Wrapf(err, "progress bar")
	}
	return res, nil
}

func (s Setup) query(res *Result, logger *zap.Logger) error {
	idx, err := s.Strategy.MakeQuery(s.Train)
	if err != nil {
		return err
	}
	if !s.Train.IsPending(idx) {
		return errors.Configf("strategy returned entry %d, which is not pending", idx)
	}

	x, err := s.Train.Features(idx)
	if err != nil {
		return err
	}
	label, err := s.Labeler.Label(x)
	if err != nil {
		return errors.Wrapf(err, "labeling entry %d", idx)
	}
	if err := s.Train.RevealLabel(idx, label); err != nil {
		return err
	}

	if err := s.Model.Train(s.Train); err != nil {
		return errors.Wrapf(err, "fitting model on %d labeled entries", s.Train.LenLabeled())
	}
	trainAcc, err := s.Model.Score(s.Train)
	if err != nil {
		return err
	}
	testAcc, err := s.Model.Score(s.Test)
	if err != nil {
		return err
	}

	res.EIn = append(res.EIn, 1-trainAcc)
	res.EOut = append(res.EOut, 1-testAcc)
	res.Accuracy = append(res.Accuracy, testAcc)
	res.Queried = append(res.Queried, idx)
	res.Labels = append(res.Labels, label)

	logger.Debug("queried",
		zap.Int("index", idx),
		zap.Int("label", label),
		zap.Int("labeled", s.Train.LenLabeled()),
		zap.Float64("e_in", 1-trainAcc),
		zap.Float64("e_out", 1-testAcc))
	return nil
}
