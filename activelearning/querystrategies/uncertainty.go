package querystrategies

import (
	"math"
	"sort"

	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/activelearning/models"
	"github.com/PAL-UH/active-learning/golib/errors"
	"gonum.org/v1/gonum/floats"
)

// Method is an uncertainty measure.
type Method string

const (
	// LeastConfident scores an entry by the negated top class score.
	LeastConfident Method = "lc"
	// SmallestMargin scores an entry by the negated gap between the two top
	// class scores.
	SmallestMargin Method = "sm"
	// Entropy scores an entry by the entropy of its class distribution.
	Entropy Method = "entropy"
)

// UncertaintySampling queries the pending entry its model is least certain
// about. The model is refit on the labeled entries before every query.
type UncertaintySampling struct {
	Model  models.ContinuousModel
	Method Method
}

// NewUncertaintySampling checks that model can serve method.
func NewUncertaintySampling(model models.Model, method Method) (*UncertaintySampling, error) {
	if method == "" {
		method = LeastConfident
	}
	switch method {
	case LeastConfident, SmallestMargin, Entropy:
	default:
		return nil, errors.Configf("unknown uncertainty method %q", method)
	}

	cm, ok := model.(models.ContinuousModel)
	if !ok {
		return nil, errors.Configf("uncertainty sampling needs a model with real-valued output, got %T", model)
	}
	if _, ok := model.(models.ProbabilisticModel); method == Entropy && !ok {
		return nil, errors.Configf("entropy needs a probabilistic model, got %T", model)
	}
	return &UncertaintySampling{Model: cm, Method: method}, nil
}

// MakeQuery implements QueryStrategy.
func (u *UncertaintySampling) MakeQuery(ds *dataset.Dataset) (int, error) {
	idxs, X, err := pending(ds)
	if err != nil {
		return 0, err
	}
	if err := u.Model.Train(ds); err != nil {
		return 0, errors.Wrapf(err, "fitting query model")
	}

	var values [][]float64
	if pm, ok := u.Model.(models.ProbabilisticModel); ok {
		values, err = pm.PredictProba(X)
	} else {
		values, err = u.Model.PredictReal(X)
	}
	if err != nil {
		return 0, err
	}

	scores := make([]float64, len(values))
	for i, row := range values {
		switch u.Method {
		case LeastConfident:
			scores[i] = -floats.Max(row)
		case SmallestMargin:
			scores[i] = -margin(row)
		case Entropy:
			scores[i] = entropy(row)
		}
	}
	// MaxIdx keeps the first maximum, and idxs is ascending
	return idxs[floats.MaxIdx(scores)], nil
}

func margin(row []float64) float64 {
	if len(row) < 2 {
		return 0
	}
	sorted := append([]float64(nil), row...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return math.Abs(sorted[0] - sorted[1])
}

func entropy(p []float64) float64 {
	var h float64
	for _, v := range p {
		if v > 0 {
			h -= v * math.Log(v)
		}
	}
	return h
}
