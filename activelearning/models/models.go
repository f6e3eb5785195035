// Package models contains the classifiers trained by the active learning loop
// and by uncertainty-based query strategies.
//
// Every model is refit from scratch on the labeled entries of a dataset each
// time Train is called; pending entries are ignored.
package models

import (
	"github.com/PAL-UH/active-learning/activelearning/dataset"
	"github.com/PAL-UH/active-learning/golib/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNoLabeledData is returned when fitting or scoring without labeled entries.
	ErrNoLabeledData = errors.New("no labeled entries")
	// ErrSingleClass is returned when the labeled entries contain only one class.
	ErrSingleClass = errors.New("labeled entries contain a single class")
	// ErrNotTrained is returned when predicting before a successful Train.
	ErrNotTrained = errors.New("model has not been trained")
	// ErrDimension is returned when a feature vector does not match the training dimension.
	ErrDimension = errors.New("feature vector has the wrong dimension")
)

// Model is a classifier that can be refit on the labeled part of a dataset.
type Model interface {
	// Train fits the model from scratch on ds's labeled entries.
	Train(ds *dataset.Dataset) error
	// Predict returns a class label for each row of X.
	Predict(X []dataset.Vector) ([]int, error)
	// Score returns the mean accuracy on ds's labeled entries.
	Score(ds *dataset.Dataset) (float64, error)
	// Classes returns the labels seen by the last Train, ascending.
	Classes() []int
}

// ContinuousModel exposes real-valued decision scores, one column per class
// in Classes() order. For two classes the columns are [-d, d], d being the
// signed score toward the second class.
type ContinuousModel interface {
	Model
	PredictReal(X []dataset.Vector) ([][]float64, error)
}

// ProbabilisticModel exposes class probabilities, one column per class.
type ProbabilisticModel interface {
	ContinuousModel
	PredictProba(X []dataset.Vector) ([][]float64, error)
}

// New returns an untrained model with default parameters by name.
func New(name string) (Model, error) {
	switch name {
	case "logistic_regression", "lr":
		return NewLogisticRegression(), nil
	case "svm":
		return NewSVM(), nil
	case "linear_svm":
		return NewLinearSVM(), nil
	default:
		return nil, errors.Configf("unknown model %q", name)
	}
}

// trainingSet extracts labeled entries and checks that a classifier can be fit.
func trainingSet(ds *dataset.Dataset) ([]dataset.Vector, []int, []int, error) {
	X, y := ds.LabeledEntries()
	if len(X) == 0 {
		return nil, nil, nil, errors.WithKind(errors.KindModel, ErrNoLabeledData)
	}
	classes := ds.Classes()
	if len(classes) < 2 {
		return nil, nil, nil, errors.WithKind(errors.KindModel,
			errors.Wrapf(ErrSingleClass, "only class %d among %d labeled entries", classes[0], len(X)))
	}
	return X, y, classes, nil
}

func classIndex(classes []int) map[int]int {
	idx := make(map[int]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}
	return idx
}

func checkDims(X []dataset.Vector, dim int) error {
	for i, x := range X {
		if len(x) != dim {
			return errors.WithKind(errors.KindModel,
				errors.Wrapf(ErrDimension, "row %d has %d features, model expects %d", i, len(x), dim))
		}
	}
	return nil
}

// argmaxClasses maps each row of scores to the class with the largest score.
// Ties go to the earliest class.
func argmaxClasses(scores [][]float64, classes []int) []int {
	preds := make([]int, len(scores))
	for i, row := range scores {
		preds[i] = classes[floats.MaxIdx(row)]
	}
	return preds
}

// score computes mean accuracy of m on ds's labeled entries.
func score(m Model, ds *dataset.Dataset) (float64, error) {
	X, y := ds.LabeledEntries()
	if len(X) == 0 {
		return 0, errors.WithKind(errors.KindModel, errors.Wrapf(ErrNoLabeledData, "cannot score"))
	}
	preds, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	var correct int
	for i, p := range preds {
		if p == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}
